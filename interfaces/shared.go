package interfaces

import (
	"encoding/json"

	"kraken_dca/models"
)

// Exchange defines what the CLI needs from the exchange client.
type Exchange interface {
	GetTicker(pair string) (*models.TickerSnapshot, error)
	GetTickerAskPrice(pair string) (float64, error)
	GetAssetPairs() (map[string]json.RawMessage, error)
	GetAccountBalance() (map[string]string, error)
	BuyLimitOrder(pair string, flatAmount, buffer float64) (*models.OrderResult, error)
	BuyLimitOrderUnits(pair string, volume, buffer float64) (*models.OrderResult, error)
	PlaceOrder(req models.OrderRequest) (*models.OrderResult, error)
}
