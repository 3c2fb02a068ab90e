package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository opens (or creates) the journal database and ensures the
// schema exists.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency between dashboard reads and imports.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// The Go driver benefits from a single connection with SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	cfg.Logger.Info(context.Background(), "Journal database ready", map[string]interface{}{"path": dbPath})
	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		ticket INTEGER NOT NULL UNIQUE,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		volume REAL NOT NULL,
		entry_price REAL NOT NULL,
		current_price REAL NOT NULL DEFAULT 0,
		exit_price REAL NOT NULL DEFAULT 0,
		stop_loss REAL NOT NULL DEFAULT 0,
		take_profit REAL NOT NULL DEFAULT 0,
		profit REAL NOT NULL DEFAULT 0,
		floating_pnl REAL NOT NULL DEFAULT 0,
		commission REAL NOT NULL DEFAULT 0,
		swap REAL NOT NULL DEFAULT 0,
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP DEFAULT NULL,
		balance REAL NOT NULL DEFAULT 0,
		equity REAL NOT NULL DEFAULT 0,
		risk_per_trade REAL NOT NULL DEFAULT 0,
		strategy TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_status_exit_time ON trades (status, exit_time);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades (symbol);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing journal database")
		return r.db.Close()
	}
	return nil
}

const tradeColumns = `id, ticket, symbol, direction, volume, entry_price, current_price,
	exit_price, stop_loss, take_profit, profit, floating_pnl, commission, swap,
	entry_time, exit_time, balance, equity, risk_per_trade, strategy, tags, status`

// Create saves a new trade record.
func (r *Repository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
	INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID, trade.Ticket, trade.Symbol, string(trade.Direction), trade.Volume,
		trade.EntryPrice, trade.CurrentPrice, trade.ExitPrice, trade.StopLoss, trade.TakeProfit,
		trade.Profit, trade.FloatingPNL, trade.Commission, trade.Swap,
		trade.EntryTime, nullableTime(trade.ExitTime),
		trade.Balance, trade.Equity, trade.RiskPerTrade,
		trade.Strategy, strings.Join(trade.Tags, ","), string(trade.Status))
	if err != nil {
		return fmt.Errorf("failed to insert trade %d (%s): %w", trade.Ticket, trade.Symbol, err)
	}
	return nil
}

// Update modifies an existing trade identified by its internal id.
func (r *Repository) Update(ctx context.Context, trade *domain.Trade) error {
	const query = `
	UPDATE trades SET
		ticket = ?, symbol = ?, direction = ?, volume = ?,
		entry_price = ?, current_price = ?, exit_price = ?, stop_loss = ?, take_profit = ?,
		profit = ?, floating_pnl = ?, commission = ?, swap = ?,
		entry_time = ?, exit_time = ?, balance = ?, equity = ?, risk_per_trade = ?,
		strategy = ?, tags = ?, status = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		trade.Ticket, trade.Symbol, string(trade.Direction), trade.Volume,
		trade.EntryPrice, trade.CurrentPrice, trade.ExitPrice, trade.StopLoss, trade.TakeProfit,
		trade.Profit, trade.FloatingPNL, trade.Commission, trade.Swap,
		trade.EntryTime, nullableTime(trade.ExitTime),
		trade.Balance, trade.Equity, trade.RiskPerTrade,
		trade.Strategy, strings.Join(trade.Tags, ","), string(trade.Status),
		trade.ID)
	if err != nil {
		return fmt.Errorf("failed to update trade %s: %w", trade.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of trade %s: %w", trade.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("trade %s not found", trade.ID)
	}
	return nil
}

// FindByTicket retrieves a trade by its terminal ticket number.
// Returns nil, nil if not found.
func (r *Repository) FindByTicket(ctx context.Context, ticket int64) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE ticket = ?`

	trade, err := scanTrade(r.db.QueryRowContext(ctx, query, ticket))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trade by ticket %d: %w", ticket, err)
	}
	return trade, nil
}

// FindAll retrieves all trades ordered by entry time ascending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades ORDER BY entry_time ASC`
	return r.queryTrades(ctx, query)
}

// FindClosed retrieves all CLOSED trades ordered by exit time ascending.
func (r *Repository) FindClosed(ctx context.Context) ([]*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades
	WHERE status = ? ORDER BY exit_time ASC`
	return r.queryTrades(ctx, query, string(domain.StatusClosed))
}

// FindClosedBetween retrieves CLOSED trades whose exit time falls in
// [start, end), ordered by exit time ascending.
func (r *Repository) FindClosedBetween(ctx context.Context, start, end time.Time) ([]*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades
	WHERE status = ? AND exit_time >= ? AND exit_time < ?
	ORDER BY exit_time ASC`
	return r.queryTrades(ctx, query, string(domain.StatusClosed), start, end)
}

// FindOpen retrieves all OPEN trades ordered by entry time ascending.
func (r *Repository) FindOpen(ctx context.Context) ([]*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades
	WHERE status = ? ORDER BY entry_time ASC`
	return r.queryTrades(ctx, query, string(domain.StatusOpen))
}

// DistinctSymbols lists the symbols present in the journal.
func (r *Repository) DistinctSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM trades ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}
	return symbols, nil
}

func (r *Repository) queryTrades(ctx context.Context, query string, args ...interface{}) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(s scanner) (*domain.Trade, error) {
	var t domain.Trade
	var direction, status, tags string
	var exitTime sql.NullTime

	err := s.Scan(
		&t.ID, &t.Ticket, &t.Symbol, &direction, &t.Volume,
		&t.EntryPrice, &t.CurrentPrice, &t.ExitPrice, &t.StopLoss, &t.TakeProfit,
		&t.Profit, &t.FloatingPNL, &t.Commission, &t.Swap,
		&t.EntryTime, &exitTime, &t.Balance, &t.Equity, &t.RiskPerTrade,
		&t.Strategy, &tags, &status)
	if err != nil {
		return nil, err
	}

	t.Direction = domain.Direction(direction)
	t.Status = domain.TradeStatus(status)
	if exitTime.Valid {
		t.ExitTime = exitTime.Time
	}
	if tags != "" {
		t.Tags = strings.Split(tags, ",")
	}
	return &t, nil
}

// nullableTime maps the zero time to NULL so open trades have no exit time
// in the database.
func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
