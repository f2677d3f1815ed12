package database

import (
	"database/sql"
	"fmt"
	stdlog "log"

	"github.com/username/tradejournal/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_number TEXT,
		instrument TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price REAL,
		close_price REAL,
		entry_date TEXT NOT NULL,
		close_date TEXT NOT NULL,
		pnl REAL,
		commission REAL,
		stop_loss REAL,
		take_profit REAL,
		close_reason TEXT,
		time_in_position REAL,
		source TEXT NOT NULL,
		vendor_trade_id TEXT,
		hash_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, hash_id)
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user_close ON trades(user_id, close_date);
	`

// Open opens the SQLite database at path and ensures the schema exists.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	if databasePath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	logger.L.Info("Checking database schema", "databasePath", databasePath)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}

// InitDB opens the application database into DB and exits on failure.
func InitDB(databasePath string) {
	db, err := Open(databasePath)
	if err != nil {
		logger.L.Error("failed to initialize database", "error", err)
		stdlog.Fatalf("failed to initialize database: %v", err)
	}
	DB = db
}
