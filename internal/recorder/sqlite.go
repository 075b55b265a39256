package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CryptoSentinel/internal/model"
)

// SQLiteRecorder persists pipeline history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (Grafana reads while bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_events (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			source          TEXT,
			source_priority INTEGER,
			event_type      TEXT,
			severity        TEXT,
			sentiment       TEXT,
			confidence      INTEGER,
			assets          TEXT,
			title           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON market_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS risk_decisions (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			event_id        TEXT,
			asset           TEXT,
			action          TEXT,
			confidence      INTEGER,
			urgency         TEXT,
			approved        INTEGER,
			reason          TEXT,
			position_size   REAL,
			needs_approval  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_ts ON risk_decisions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			side       TEXT,
			amount     REAL,
			price      REAL,
			status     TEXT,
			event_id   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS risk_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			portfolio_value  REAL,
			daily_pnl        REAL,
			total_pnl        REAL,
			drawdown         REAL,
			daily_loss_pct   REAL,
			open_trades      INTEGER,
			emergency_active INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON risk_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvent(evt *model.MarketEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR IGNORE INTO market_events
		(id, timestamp, source, source_priority, event_type, severity, sentiment, confidence, assets, title)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		evt.ID, evt.Timestamp.Unix(), evt.Source, evt.SourcePriority,
		string(evt.Type), string(evt.Severity), string(evt.Sentiment),
		evt.Confidence, strings.Join(evt.AffectedAssets, ","), evt.Title,
	)
	return err
}

func (r *SQLiteRecorder) RecordDecision(rec *DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	approved := 0
	if rec.Approved {
		approved = 1
	}
	needsApproval := 0
	if rec.RequiresHumanApproval {
		needsApproval = 1
	}
	_, err := r.db.Exec(`INSERT INTO risk_decisions
		(timestamp, event_id, asset, action, confidence, urgency, approved, reason, position_size, needs_approval)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.EventID, rec.Asset, string(rec.Action),
		rec.Confidence, string(rec.Urgency), approved, rec.Reason,
		rec.PositionSize, needsApproval,
	)
	return err
}

func (r *SQLiteRecorder) RecordTrade(t *model.TradeExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trades
		(id, timestamp, symbol, side, amount, price, status, event_id)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET status=excluded.status, price=excluded.price`,
		t.ID, t.Timestamp.Unix(), t.Symbol, string(t.Side),
		t.Amount, t.Price, string(t.Status), t.EventID,
	)
	return err
}

func (r *SQLiteRecorder) RecordRiskSnapshot(m *model.RiskMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emergency := 0
	if m.EmergencyStopActive {
		emergency = 1
	}
	_, err := r.db.Exec(`INSERT INTO risk_snapshots
		(timestamp, portfolio_value, daily_pnl, total_pnl, drawdown, daily_loss_pct, open_trades, emergency_active)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), m.PortfolioValue, m.DailyPnL, m.TotalPnL,
		m.CurrentDrawdown, m.DailyLossPct, m.OpenTrades, emergency,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
