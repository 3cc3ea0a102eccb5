package db

import (
	"testing"
)

func TestJournalRoundTrip(t *testing.T) {
	journal, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	defer journal.Close()

	if err := journal.LogOrder("XXBTZEUR", "buy", "limit", 0.000199, 50100.1, "OU22CG-KLAF2-FWUDD7"); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if err := journal.LogOrder("SOLEUR", "buy", "limit", 0.07, 140.5, "O5EYV6-PQW2N-XJ4CBM"); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	records, err := journal.Orders("XXBTZEUR")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if len(records) != 1 {
		t.Fatalf("Unexpected record count. Expected: 1; Actual: %d.", len(records))
	}

	record := records[0]
	if record.Side != "buy" || record.OrderType != "limit" {
		t.Errorf("Unexpected side/ordertype: %s/%s", record.Side, record.OrderType)
	}
	if record.Volume != 0.000199 {
		t.Errorf("Unexpected volume: %v", record.Volume)
	}
	if record.Price != 50100.1 {
		t.Errorf("Unexpected price: %v", record.Price)
	}
	if record.TxID != "OU22CG-KLAF2-FWUDD7" {
		t.Errorf("Unexpected txid: %s", record.TxID)
	}
}

func TestJournalOrders_EmptyPair(t *testing.T) {
	journal, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	defer journal.Close()

	records, err := journal.Orders("XXBTZEUR")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
