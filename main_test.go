package main

import (
	"encoding/json"
	"errors"
	"testing"

	"kraken_dca/config"
	"kraken_dca/models"

	"go.uber.org/zap"
)

type stubExchange struct {
	askPrice float64
	askErr   error
	orderErr error

	calledMethod string
	calledPair   string
	calledAmount float64
	calledBuffer float64
}

func (s *stubExchange) GetTicker(pair string) (*models.TickerSnapshot, error) {
	if s.askErr != nil {
		return nil, s.askErr
	}
	return &models.TickerSnapshot{Pair: pair, Ask: s.askPrice}, nil
}

func (s *stubExchange) GetTickerAskPrice(pair string) (float64, error) {
	snapshot, err := s.GetTicker(pair)
	if err != nil {
		return 0, err
	}
	return snapshot.Ask, nil
}

func (s *stubExchange) GetAssetPairs() (map[string]json.RawMessage, error) {
	return map[string]json.RawMessage{"XXBTZEUR": json.RawMessage(`{}`)}, nil
}

func (s *stubExchange) GetAccountBalance() (map[string]string, error) {
	return map[string]string{"ZEUR": "100.0"}, nil
}

func (s *stubExchange) BuyLimitOrder(pair string, flatAmount, buffer float64) (*models.OrderResult, error) {
	s.calledMethod = "BuyLimitOrder"
	s.calledPair = pair
	s.calledAmount = flatAmount
	s.calledBuffer = buffer
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return &models.OrderResult{TxIDs: []string{"OTEST1"}}, nil
}

func (s *stubExchange) BuyLimitOrderUnits(pair string, volume, buffer float64) (*models.OrderResult, error) {
	s.calledMethod = "BuyLimitOrderUnits"
	s.calledPair = pair
	s.calledAmount = volume
	s.calledBuffer = buffer
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return &models.OrderResult{TxIDs: []string{"OTEST2"}}, nil
}

func (s *stubExchange) PlaceOrder(req models.OrderRequest) (*models.OrderResult, error) {
	s.calledMethod = "PlaceOrder"
	return &models.OrderResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		CLI: config.CLIConfig{DefaultBuffer: 0.002},
	}
}

func TestRunBuy_PlacesFlatAmountOrder(t *testing.T) {
	stub := &stubExchange{askPrice: 50000.1}
	code := runBuy([]string{"-symbol", "XXBTZEUR", "-amount", "10"}, testConfig(), stub, zap.NewNop())
	if code != 0 {
		t.Fatalf("Unexpected exit code: %d", code)
	}
	if stub.calledMethod != "BuyLimitOrder" {
		t.Errorf("Unexpected order method: %s", stub.calledMethod)
	}
	if stub.calledPair != "XXBTZEUR" || stub.calledAmount != 10 || stub.calledBuffer != 0.002 {
		t.Errorf("Unexpected order arguments: %s %v %v", stub.calledPair, stub.calledAmount, stub.calledBuffer)
	}
}

func TestRunBuy_UnitsFlag(t *testing.T) {
	stub := &stubExchange{askPrice: 50000.1}
	code := runBuy([]string{"-symbol", "XXBTZEUR", "-amount", "0.001", "-units"}, testConfig(), stub, zap.NewNop())
	if code != 0 {
		t.Fatalf("Unexpected exit code: %d", code)
	}
	if stub.calledMethod != "BuyLimitOrderUnits" {
		t.Errorf("Unexpected order method: %s", stub.calledMethod)
	}
}

func TestRunBuy_DryRunPlacesNothing(t *testing.T) {
	stub := &stubExchange{askPrice: 50000.1}
	code := runBuy([]string{"-symbol", "XXBTZEUR", "-amount", "10", "-dry-run"}, testConfig(), stub, zap.NewNop())
	if code != 0 {
		t.Fatalf("Unexpected exit code: %d", code)
	}
	if stub.calledMethod != "" {
		t.Errorf("Dry run submitted an order via %s", stub.calledMethod)
	}
}

func TestRunBuy_PriceFetchFailureExits1(t *testing.T) {
	stub := &stubExchange{askErr: errors.New("network down")}
	code := runBuy([]string{"-symbol", "XXBTZEUR", "-amount", "10"}, testConfig(), stub, zap.NewNop())
	if code != 1 {
		t.Errorf("Unexpected exit code. Expected: 1; Actual: %d.", code)
	}
}

func TestRunBuy_OrderFailureExits3(t *testing.T) {
	stub := &stubExchange{askPrice: 50000.1, orderErr: errors.New("EOrder:Insufficient funds")}
	code := runBuy([]string{"-symbol", "XXBTZEUR", "-amount", "10"}, testConfig(), stub, zap.NewNop())
	if code != 3 {
		t.Errorf("Unexpected exit code. Expected: 3; Actual: %d.", code)
	}
}

func TestRunBalance(t *testing.T) {
	if code := runBalance(&stubExchange{}, zap.NewNop()); code != 0 {
		t.Errorf("Unexpected exit code: %d", code)
	}
}

func TestRunPairs(t *testing.T) {
	if code := runPairs(&stubExchange{}, zap.NewNop()); code != 0 {
		t.Errorf("Unexpected exit code: %d", code)
	}
}
