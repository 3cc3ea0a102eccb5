package models

// TickerSnapshot is the result of a single price query. It is never cached;
// every order computation fetches a fresh one.
type TickerSnapshot struct {
	Pair string
	Ask  float64
}
