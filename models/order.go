package models

import "encoding/json"

// OrderRequest describes one order to submit. Constructed fresh per call and
// never persisted. Extra carries additional AddOrder parameters (leverage,
// stop price, ...) as an explicit string-to-string map.
type OrderRequest struct {
	Pair          string
	Type          string // "buy" or "sell"
	OrderType     string // "market", "limit", ...
	Volume        float64
	Price         *float64 // required for limit orders
	ClientOrderID string   // generated when empty
	Extra         map[string]string
}

// OrderResult is the exchange's response to an order submission. Raw is the
// unmodified result object; TxIDs and Description are parsed out of it for
// logging convenience.
type OrderResult struct {
	TxIDs       []string
	Description string
	Raw         json.RawMessage
}

// OrderRecord is one journaled order submission.
type OrderRecord struct {
	ID        int     `db:"id"`
	Pair      string  `db:"pair"`
	Side      string  `db:"side"`
	OrderType string  `db:"ordertype"`
	Volume    float64 `db:"volume"`
	Price     float64 `db:"price"`
	TxID      string  `db:"txid"`
}
