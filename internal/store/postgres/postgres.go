// Package postgres implements the meal store on PostgreSQL via the pgx
// stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the meals table and its lookup index when missing.
// The timestamp column is ISO-8601 UTC text, the same layout the SQLite
// driver uses, so date-prefix queries behave identically across drivers.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
    CREATE TABLE IF NOT EXISTS meals (
        id        TEXT PRIMARY KEY,
        user_id   TEXT NOT NULL,
        timestamp TEXT NOT NULL,
        meal_text TEXT,
        calories  DOUBLE PRECISION NOT NULL,
        protein_g DOUBLE PRECISION NOT NULL,
        details   JSONB
    );
    CREATE INDEX IF NOT EXISTS idx_meals_user_timestamp ON meals (user_id, timestamp);
    `
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure meals schema: %w", err)
	}
	return nil
}

// Bootstrap verifies Postgres is reachable and the schema exists.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil // No DSN configured, skip bootstrap
	}

	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return EnsureSchema(ctx, db)
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Meals() store.Meals { return &meals{db: s.db} }

// HealthPing implements health.HealthPinger for Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
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
        VALUES ($1, $2, $3, $4, $5, $6, $7)
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
        FROM meals WHERE user_id = $1 AND timestamp LIKE $2
    `, userID, date+"%")
	if err := row.Scan(&calories, &proteinG); err != nil {
		return 0, 0, err
	}
	return calories, proteinG, nil
}

func (m *meals) DeleteForDate(ctx context.Context, userID, date string) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
        DELETE FROM meals WHERE user_id = $1 AND timestamp LIKE $2
    `, userID, date+"%")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
