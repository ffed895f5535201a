package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(order_id, symbol, quantity, price, fee, realized_pl, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.OrderID, t.Symbol, t.Quantity, t.Price, t.Fee, t.RealizedPL, t.Time,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, currency, cash, equity, buying_power)
		VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Currency, e.Cash, e.Equity, e.BuyingPower,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
