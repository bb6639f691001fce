package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a quotes table for deployments that
// outgrow the single-document file. Each record is kept as a JSONB payload
// alongside indexed id/status/created_at columns; insertion order is
// preserved by a bigserial sequence.
//
// Expected schema:
//
//	CREATE TABLE quotes (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    id         TEXT NOT NULL UNIQUE,
//	    status     TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    payload    JSONB NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a store on the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("quotes: encode record: %w", err)
	}

	const query = `INSERT INTO quotes (id, status, created_at, payload) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, query, rec.ID, string(rec.Status), rec.Timestamp, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return fmt.Errorf("quotes: insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	const query = `SELECT payload FROM quotes ORDER BY seq`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quotes: list records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("quotes: scan record: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("quotes: decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quotes: list records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Record, error) {
	const query = `SELECT payload FROM quotes WHERE id = $1`
	var payload []byte
	if err := s.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("quotes: get record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("quotes: decode record: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) (*Record, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	const query = `
		UPDATE quotes
		SET status = $2,
		    payload = jsonb_set(payload, '{status}', to_jsonb($2::text))
		WHERE id = $1
		RETURNING payload`
	var payload []byte
	if err := s.pool.QueryRow(ctx, query, id, string(status)).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("quotes: update status: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("quotes: decode record: %w", err)
	}
	return &rec, nil
}
