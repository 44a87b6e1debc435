package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists readings to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers do not block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at      INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			bar_date    TEXT NOT NULL,
			close       REAL NOT NULL,
			ema20       REAL,
			ema50       REAL,
			sma200      REAL,
			rsi         REAL,
			macd_hist   REAL,
			signal      TEXT,
			forecast    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON signal_snapshots(symbol, run_at)`,

		`CREATE TABLE IF NOT EXISTS symbol_warnings (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at    INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			kind      TEXT NOT NULL,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_warnings_ts ON symbol_warnings(run_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_snapshots
		(run_at, symbol, bar_date, close, ema20, ema50, sma200, rsi, macd_hist, signal, forecast)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		snap.RunAt.Unix(), snap.Symbol, snap.Date.Format("2006-01-02"), snap.Close,
		snap.Row.EMA20, snap.Row.EMA50, snap.Row.SMA200, snap.Row.RSI, snap.Row.MACDHist,
		nullString(string(snap.Signal)), nullString(string(snap.Forecast)),
	)
	return err
}

func (r *SQLiteRecorder) RecordWarning(w *Warning) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO symbol_warnings (run_at, symbol, kind, message) VALUES (?,?,?,?)`,
		w.RunAt.Unix(), w.Symbol, w.Kind, w.Message)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
