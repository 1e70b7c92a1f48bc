package store

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based journal store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table: one row per completed trade
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		fees REAL NOT NULL,
		pnl REAL NOT NULL,
		tags TEXT,
		trade_notes TEXT,
		notes TEXT,
		duration TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Screenshots attached to trades
	CREATE TABLE IF NOT EXISTS screenshots (
		id TEXT PRIMARY KEY,
		trade_id TEXT NOT NULL,
		filename TEXT,
		caption TEXT,
		data BLOB,
		taken_at DATETIME,
		FOREIGN KEY (trade_id) REFERENCES trades(id) ON DELETE CASCADE
	);

	-- Available strategy tags, ordered for display
	CREATE TABLE IF NOT EXISTS tags (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);

	-- Daily goal thresholds (single row)
	CREATE TABLE IF NOT EXISTS goals (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		max_loss REAL NOT NULL,
		target_profit REAL NOT NULL,
		max_trades INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_screenshots_trade ON screenshots(trade_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTrades inserts the given trades, replacing any rows with matching
// ids. Deduplication against the existing collection is the caller's
// concern (journal.Dedupe).
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("save_trades", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO trades
		(id, date, time, symbol, side, quantity, entry_price, exit_price, fees, pnl, tags, trade_notes, notes, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStoreError("save_trades", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Date, t.Time, t.Symbol, string(t.Side),
			t.Quantity, t.EntryPrice, t.ExitPrice, t.Fees, t.PnL,
			strings.Join(t.Tags, ";"), t.TradeNotes, t.Notes, t.Duration,
		); err != nil {
			return errors.NewStoreError("save_trades", err)
		}
		if err := saveScreenshots(ctx, tx, t); err != nil {
			return errors.NewStoreError("save_trades", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("save_trades", err)
	}
	return nil
}

func saveScreenshots(ctx context.Context, tx *sql.Tx, t models.Trade) error {
	if len(t.Screenshots) == 0 {
		return nil
	}
	for _, sc := range t.Screenshots {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO screenshots (id, trade_id, filename, caption, data, taken_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sc.ID, t.ID, sc.Filename, sc.Caption, sc.Data, sc.TakenAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetTrades returns the full collection ordered by date then insertion.
func (s *SQLiteStore) GetTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time, symbol, side, quantity, entry_price, exit_price, fees, pnl, tags, trade_notes, notes, duration
		FROM trades ORDER BY date, created_at`)
	if err != nil {
		return nil, errors.NewStoreError("get_trades", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, errors.NewStoreError("get_trades", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("get_trades", err)
	}
	return trades, nil
}

// GetTradeByID returns a single trade with its screenshots loaded.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, time, symbol, side, quantity, entry_price, exit_price, fees, pnl, tags, trade_notes, notes, duration
		FROM trades WHERE id = ?`, id)

	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, errors.NewStoreError("get_trade", err)
	}

	shots, err := s.db.QueryContext(ctx, `
		SELECT id, filename, caption, data, taken_at FROM screenshots WHERE trade_id = ? ORDER BY taken_at`, id)
	if err != nil {
		return nil, errors.NewStoreError("get_trade", err)
	}
	defer shots.Close()
	for shots.Next() {
		var sc models.Screenshot
		var takenAt sql.NullTime
		if err := shots.Scan(&sc.ID, &sc.Filename, &sc.Caption, &sc.Data, &takenAt); err != nil {
			return nil, errors.NewStoreError("get_trade", err)
		}
		if takenAt.Valid {
			sc.TakenAt = takenAt.Time
		}
		t.Screenshots = append(t.Screenshots, sc)
	}
	return &t, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(r rowScanner) (models.Trade, error) {
	var t models.Trade
	var side, tags string
	err := r.Scan(&t.ID, &t.Date, &t.Time, &t.Symbol, &side,
		&t.Quantity, &t.EntryPrice, &t.ExitPrice, &t.Fees, &t.PnL,
		&tags, &t.TradeNotes, &t.Notes, &t.Duration)
	if err != nil {
		return t, err
	}
	t.Side = models.Side(side)
	if tags != "" {
		t.Tags = strings.Split(tags, ";")
	}
	return t, nil
}

// ReplaceTrade overwrites a trade wholesale by id. Records are never
// partially mutated.
func (s *SQLiteStore) ReplaceTrade(ctx context.Context, trade models.Trade) error {
	if _, err := s.GetTradeByID(ctx, trade.ID); err != nil {
		return err
	}
	return s.SaveTrades(ctx, []models.Trade{trade})
}

// DeleteTrades removes the trades with the given ids, screenshots
// included.
func (s *SQLiteStore) DeleteTrades(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("delete_trades", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM screenshots WHERE trade_id = ?`, id); err != nil {
			return errors.NewStoreError("delete_trades", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id); err != nil {
			return errors.NewStoreError("delete_trades", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("delete_trades", err)
	}
	return nil
}

// TagTrades appends a tag to every listed trade that does not already
// carry it.
func (s *SQLiteStore) TagTrades(ctx context.Context, ids []string, tag string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("tag_trades", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		var tags string
		err := tx.QueryRowContext(ctx, `SELECT tags FROM trades WHERE id = ?`, id).Scan(&tags)
		if err == sql.ErrNoRows {
			return errors.ErrTradeNotFound
		}
		if err != nil {
			return errors.NewStoreError("tag_trades", err)
		}

		current := []string{}
		if tags != "" {
			current = strings.Split(tags, ";")
		}
		has := false
		for _, existing := range current {
			if existing == tag {
				has = true
				break
			}
		}
		if has {
			continue
		}
		current = append(current, tag)
		if _, err := tx.ExecContext(ctx, `UPDATE trades SET tags = ? WHERE id = ?`,
			strings.Join(current, ";"), id); err != nil {
			return errors.NewStoreError("tag_trades", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("tag_trades", err)
	}
	return nil
}

// ClearTrades wipes the trade collection and attached screenshots.
func (s *SQLiteStore) ClearTrades(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("clear_trades", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM screenshots`); err != nil {
		return errors.NewStoreError("clear_trades", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return errors.NewStoreError("clear_trades", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("clear_trades", err)
	}
	return nil
}

// GetTags returns the available strategy tags in display order, seeding
// the defaults on first use.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM tags ORDER BY position`)
	if err != nil {
		return nil, errors.NewStoreError("get_tags", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.NewStoreError("get_tags", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("get_tags", err)
	}

	if len(tags) == 0 {
		tags = models.DefaultAvailableTags()
		if err := s.SaveTags(ctx, tags); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

// SaveTags overwrites the available-tag list wholesale.
func (s *SQLiteStore) SaveTags(ctx context.Context, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("save_tags", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tags`); err != nil {
		return errors.NewStoreError("save_tags", err)
	}
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags (name, position) VALUES (?, ?)`, tag, i); err != nil {
			return errors.NewStoreError("save_tags", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("save_tags", err)
	}
	return nil
}

// GetGoals returns the stored thresholds, or the defaults when none have
// been saved yet.
func (s *SQLiteStore) GetGoals(ctx context.Context) (models.DailyGoals, error) {
	var g models.DailyGoals
	err := s.db.QueryRowContext(ctx,
		`SELECT max_loss, target_profit, max_trades FROM goals WHERE id = 1`).
		Scan(&g.MaxLoss, &g.TargetProfit, &g.MaxTrades)
	if err == sql.ErrNoRows {
		return models.DefaultDailyGoals(), nil
	}
	if err != nil {
		return g, errors.NewStoreError("get_goals", err)
	}
	return g, nil
}

// SaveGoals overwrites the goal thresholds wholesale.
func (s *SQLiteStore) SaveGoals(ctx context.Context, goals models.DailyGoals) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO goals (id, max_loss, target_profit, max_trades)
		VALUES (1, ?, ?, ?)`,
		goals.MaxLoss, goals.TargetProfit, goals.MaxTrades)
	if err != nil {
		return errors.NewStoreError("save_goals", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ DataStore = (*SQLiteStore)(nil)
