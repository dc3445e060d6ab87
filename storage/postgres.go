package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jtlavin/portalinmo/config"
	"github.com/jtlavin/portalinmo/models"
)

// PostgresStore is the optional relational sink. Records are upserted
// by listing URL, so re-scraping a comuna refreshes rows in place.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.DBConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRun upserts every property of one comuna run in a single
// transaction and returns the number of rows written.
func (s *PostgresStore) SaveRun(ctx context.Context, comuna, propertyType string, properties []models.Property) (int, error) {
	if len(properties) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO properties (url, comuna, property_type, dormitorios, banos, superficie, ubicacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO UPDATE
		SET
			comuna = EXCLUDED.comuna,
			property_type = EXCLUDED.property_type,
			dormitorios = EXCLUDED.dormitorios,
			banos = EXCLUDED.banos,
			superficie = EXCLUDED.superficie,
			ubicacion = EXCLUDED.ubicacion,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, p := range properties {
		if p.URL == "" {
			continue
		}
		if _, err = stmt.ExecContext(
			ctx,
			p.URL,
			comuna,
			propertyType,
			p.Dormitorios,
			p.Banos,
			p.Superficie,
			p.Ubicacion,
		); err != nil {
			return 0, fmt.Errorf("insert property %q: %w", p.URL, err)
		}
		total++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS properties (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			comuna TEXT NOT NULL,
			property_type TEXT NOT NULL,
			dormitorios INT,
			banos INT,
			superficie TEXT,
			ubicacion TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_properties_comuna ON properties(comuna);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
