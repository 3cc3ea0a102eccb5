package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"kraken_dca/client"
	"kraken_dca/config"
	"kraken_dca/db"
	"kraken_dca/interfaces"
	"kraken_dca/logger"
	"kraken_dca/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = "usage: kraken_dca <buy|balance|pairs> [flags]"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on the environment")
	}

	cfg, err := config.Load(os.Getenv("KRAKEN_DCA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	creds := models.Credentials{
		PublicKey:  os.Getenv("PUBLIC_KEY"),
		PrivateKey: os.Getenv("PRIVATE_KEY"),
	}
	if creds.PublicKey == "" || creds.PrivateKey == "" {
		log.Warn("PUBLIC_KEY or PRIVATE_KEY not found in environment. Make sure .env is loaded.")
	}
	cl := client.New(creds, cfg.Exchange.BaseURL, log)

	switch args[0] {
	case "buy":
		return runBuy(args[1:], cfg, cl, log)
	case "balance":
		return runBalance(cl, log)
	case "pairs":
		return runPairs(cl, log)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", args[0], usage)
		return 2
	}
}

func runBuy(args []string, cfg *config.Config, exchange interfaces.Exchange, log *zap.Logger) int {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "Kraken trading pair symbol (e.g. XXBTZEUR, SOLEUR)")
	amount := fs.Float64("amount", 0, "Amount to spend in fiat, or asset units with -units")
	units := fs.Bool("units", false, "Interpret -amount as asset units (volume) instead of a fiat amount")
	buffer := fs.Float64("buffer", cfg.CLI.DefaultBuffer, "Limit price buffer as a decimal fraction (0.002 = 0.2%)")
	dryRun := fs.Bool("dry-run", false, "Compute and log the order without placing it")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *symbol == "" {
		choices := strings.Join(cfg.CLI.KnownSymbols, ", ")
		value, err := prompt(fmt.Sprintf("Symbol (example: %s). Enter the exact Kraken pair symbol", choices))
		if err != nil || value == "" {
			log.Error("No symbol provided")
			return 2
		}
		*symbol = value
	}

	if *amount <= 0 {
		value, err := prompt("Amount to use (fiat amount or units depending on -units). Enter a number")
		if err != nil {
			log.Error("No amount provided")
			return 2
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed <= 0 {
			log.Error("Invalid amount", zap.String("input", value))
			return 2
		}
		*amount = parsed
	}

	askPrice, err := exchange.GetTickerAskPrice(*symbol)
	if err != nil {
		log.Error("Failed to fetch ask price", zap.String("symbol", *symbol), zap.Error(err))
		return 1
	}

	limitPrice := client.LimitPrice(askPrice, *buffer)
	log.Info("Computed limit price",
		zap.String("symbol", *symbol),
		zap.Float64("ask_price", askPrice),
		zap.Float64("buffer", *buffer),
		zap.Float64("limit_price", limitPrice),
	)

	mode := "flat amount"
	if *units {
		mode = "units"
	}

	if *dryRun {
		log.Info("[DRY RUN] Would place buy limit order",
			zap.String("symbol", *symbol),
			zap.Float64("price", limitPrice),
			zap.String("mode", mode),
			zap.Float64("amount", *amount),
		)
		return 0
	}

	var order *models.OrderResult
	if *units {
		order, err = exchange.BuyLimitOrderUnits(*symbol, *amount, *buffer)
	} else {
		order, err = exchange.BuyLimitOrder(*symbol, *amount, *buffer)
	}
	if err != nil {
		log.Error("Error placing order", zap.Error(err))
		return 3
	}

	log.Info("Order placed",
		zap.Strings("txid", order.TxIDs),
		zap.String("descr", order.Description),
	)

	if cfg.Journal.Path != "" {
		journalOrder(cfg.Journal.Path, *symbol, *amount, *units, limitPrice, order, log)
	}
	return 0
}

// journalOrder appends the submission to the local audit journal. The volume
// recorded for flat amounts is recomputed from the previewed limit price; a
// journal failure never fails the order, which was already placed.
func journalOrder(path, symbol string, amount float64, units bool, limitPrice float64, order *models.OrderResult, log *zap.Logger) {
	journal, err := db.Open(path)
	if err != nil {
		log.Warn("Failed to open order journal", zap.Error(err))
		return
	}
	defer journal.Close()

	volume := amount
	if !units {
		volume = amount / limitPrice
	}
	txid := strings.Join(order.TxIDs, ",")
	if err := journal.LogOrder(symbol, "buy", "limit", volume, limitPrice, txid); err != nil {
		log.Warn("Failed to journal order", zap.Error(err))
	}
}

func runBalance(exchange interfaces.Exchange, log *zap.Logger) int {
	balances, err := exchange.GetAccountBalance()
	if err != nil {
		log.Error("Failed to fetch account balance", zap.Error(err))
		return 1
	}

	assets := make([]string, 0, len(balances))
	for asset := range balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for _, asset := range assets {
		fmt.Printf("%s\t%s\n", asset, balances[asset])
	}
	return 0
}

func runPairs(exchange interfaces.Exchange, log *zap.Logger) int {
	pairs, err := exchange.GetAssetPairs()
	if err != nil {
		log.Error("Failed to fetch asset pairs", zap.Error(err))
		return 1
	}

	names := make([]string, 0, len(pairs))
	for name := range pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return 0
}

func prompt(question string) (string, error) {
	fmt.Printf("%s: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
