// Package sqlite implements the meal store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// Open opens (or creates) a SQLite database at the given path with WAL
// journal mode and a busy timeout so concurrent writers queue instead of
// failing immediately.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Simple ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the meals table and its lookup index when missing.
// Timestamps are stored as ISO-8601 UTC text so date queries can match on
// the string prefix.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
    CREATE TABLE IF NOT EXISTS meals (
        id        TEXT PRIMARY KEY,
        user_id   TEXT NOT NULL,
        timestamp TEXT NOT NULL,
        meal_text TEXT,
        calories  REAL NOT NULL,
        protein_g REAL NOT NULL,
        details   TEXT
    );
    CREATE INDEX IF NOT EXISTS idx_meals_user_timestamp ON meals (user_id, timestamp);
    `
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure meals schema: %w", err)
	}
	return nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Meals() store.Meals { return &meals{db: s.db} }

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Meals ---
type meals struct{ db *sql.DB }

func (m *meals) Append(ctx context.Context, rec *model.MealRecord) (*model.MealRecord, error) {
	out := *rec
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.Timestamp.IsZero() {
		out.Timestamp = time.Now().UTC()
	}

	details, err := json.Marshal(out.Items)
	if err != nil {
		return nil, err
	}

	_, err = m.db.ExecContext(ctx, `
        INSERT INTO meals (id, user_id, timestamp, meal_text, calories, protein_g, details)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, out.ID, out.UserID, out.Timestamp.UTC().Format(time.RFC3339Nano), out.RawText, out.TotalCalories, out.TotalProteinG, string(details))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *meals) SumForDate(ctx context.Context, userID, date string) (float64, float64, error) {
	var calories, proteinG float64
	row := m.db.QueryRowContext(ctx, `
        SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein_g), 0)
        FROM meals WHERE user_id = ? AND timestamp LIKE ?
    `, userID, date+"%")
	if err := row.Scan(&calories, &proteinG); err != nil {
		return 0, 0, err
	}
	return calories, proteinG, nil
}

func (m *meals) DeleteForDate(ctx context.Context, userID, date string) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
        DELETE FROM meals WHERE user_id = ? AND timestamp LIKE ?
    `, userID, date+"%")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
