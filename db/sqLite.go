package db

import (
	"database/sql"
	"fmt"

	"kraken_dca/models"

	_ "github.com/mattn/go-sqlite3"
)

// Journal is an append-only SQLite record of submitted orders. It is an audit
// log: nothing in the application reads it back to track or manage orders.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database %s: %w", path, err)
	}

	query := `
    CREATE TABLE IF NOT EXISTS orders (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        pair TEXT NOT NULL,
        side TEXT NOT NULL,
        ordertype TEXT NOT NULL,
        volume REAL NOT NULL,
        price REAL NOT NULL,
        txid TEXT,
        timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
    );`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating orders table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// LogOrder appends a submitted order to the journal.
func (j *Journal) LogOrder(pair, side, ordertype string, volume, price float64, txid string) error {
	query := `INSERT INTO orders (pair, side, ordertype, volume, price, txid) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := j.db.Exec(query, pair, side, ordertype, volume, price, txid)
	return err
}

// Orders fetches the journaled submissions for a pair, oldest first.
func (j *Journal) Orders(pair string) ([]*models.OrderRecord, error) {
	query := `SELECT id, pair, side, ordertype, volume, price, txid FROM orders WHERE pair = ? ORDER BY id`
	rows, err := j.db.Query(query, pair)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.OrderRecord
	for rows.Next() {
		var record models.OrderRecord
		err := rows.Scan(&record.ID, &record.Pair, &record.Side, &record.OrderType, &record.Volume, &record.Price, &record.TxID)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
