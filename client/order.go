package client

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"kraken_dca/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// priceTick is the price rounding granularity for limit orders: one decimal
// place, matching the tick size of the EUR pairs this client trades. Pairs
// with a finer tick would need this to become configurable.
const priceTick = 10

// LimitPrice applies the buffer to the ask price and rounds to the exchange
// price tick. The dry-run preview and the order path share this function, so
// the previewed price always equals the submitted one for the same inputs.
func LimitPrice(askPrice, buffer float64) float64 {
	return roundTick(askPrice * (1 + buffer))
}

func roundTick(price float64) float64 {
	return math.Round(price*priceTick) / priceTick
}

// GetTicker fetches a fresh ticker snapshot for pair.
func (c *KrakenClient) GetTicker(pair string) (*models.TickerSnapshot, error) {
	query := url.Values{}
	query.Set("pair", pair)
	result, err := c.FetchPublic(tickerPath, query)
	if err != nil {
		return nil, err
	}

	var tickers map[string]struct {
		Ask []string `json:"a"`
	}
	if err := json.Unmarshal(result, &tickers); err != nil {
		return nil, newTransportError("decoding ticker result", err)
	}
	ticker, ok := tickers[pair]
	if !ok {
		return nil, newNotFoundError("pair " + pair + " not present in ticker result")
	}
	if len(ticker.Ask) == 0 {
		return nil, newNotFoundError("pair " + pair + " has no ask data")
	}
	ask, err := strconv.ParseFloat(ticker.Ask[0], 64)
	if err != nil {
		return nil, newTransportError("parsing ask price for "+pair, err)
	}
	return &models.TickerSnapshot{Pair: pair, Ask: ask}, nil
}

// GetTickerAskPrice returns the current best ask for pair.
func (c *KrakenClient) GetTickerAskPrice(pair string) (float64, error) {
	snapshot, err := c.GetTicker(pair)
	if err != nil {
		return 0, err
	}
	return snapshot.Ask, nil
}

// BuyLimitOrder spends flatAmount of the quote currency on pair: it fetches
// the ask, computes the limit price from the buffer and submits a buy limit
// order for volume = flatAmount / limitPrice.
func (c *KrakenClient) BuyLimitOrder(pair string, flatAmount, buffer float64) (*models.OrderResult, error) {
	askPrice, err := c.GetTickerAskPrice(pair)
	if err != nil {
		return nil, err
	}
	limitPrice := LimitPrice(askPrice, buffer)
	volume := flatAmount / limitPrice
	return c.PlaceOrder(models.OrderRequest{
		Pair:      pair,
		Type:      "buy",
		OrderType: "limit",
		Volume:    volume,
		Price:     &limitPrice,
	})
}

// BuyLimitOrderUnits buys an explicit volume of the base asset at the buffered
// limit price.
func (c *KrakenClient) BuyLimitOrderUnits(pair string, volume, buffer float64) (*models.OrderResult, error) {
	askPrice, err := c.GetTickerAskPrice(pair)
	if err != nil {
		return nil, err
	}
	limitPrice := LimitPrice(askPrice, buffer)
	return c.PlaceOrder(models.OrderRequest{
		Pair:      pair,
		Type:      "buy",
		OrderType: "limit",
		Volume:    volume,
		Price:     &limitPrice,
	})
}

// PlaceOrder submits an order via the private AddOrder endpoint. A fresh
// client order ID is generated when the request carries none. Upstream
// failures and exchange rejections surface to the caller with the raw error
// payload preserved.
func (c *KrakenClient) PlaceOrder(req models.OrderRequest) (*models.OrderResult, error) {
	clientOrderID := req.ClientOrderID
	if clientOrderID == "" {
		clientOrderID = uuid.NewString()
	}

	body := map[string]string{
		"pair":      req.Pair,
		"type":      req.Type,
		"ordertype": req.OrderType,
		"volume":    strconv.FormatFloat(req.Volume, 'f', -1, 64),
		"cl_ord_id": clientOrderID,
	}
	if req.Price != nil {
		body["price"] = strconv.FormatFloat(*req.Price, 'f', -1, 64)
	}
	for k, v := range req.Extra {
		body[k] = v
	}

	c.logger.Debug("placing order",
		zap.String("pair", req.Pair),
		zap.String("type", req.Type),
		zap.String("ordertype", req.OrderType),
		zap.String("cl_ord_id", clientOrderID),
	)

	result, err := c.FetchPrivate(http.MethodPost, addOrderPath, body)
	if err != nil {
		return nil, err
	}

	order := &models.OrderResult{Raw: result}
	var parsed struct {
		Descr struct {
			Order string `json:"order"`
		} `json:"descr"`
		TxID []string `json:"txid"`
	}
	if err := json.Unmarshal(result, &parsed); err == nil {
		order.TxIDs = parsed.TxID
		order.Description = parsed.Descr.Order
	}
	return order, nil
}
