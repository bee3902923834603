package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/bite-admin/bite/pkg/model"
)

// schema creates the single records table. Each row holds one record as a
// JSON document; seq keeps creation order.
const schema = `
CREATE TABLE IF NOT EXISTS bite_records (
	kind       TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	doc        JSONB       NOT NULL,
	seq        BIGSERIAL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
)`

// uniqueViolation is the SQLSTATE for a duplicate primary key.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL-backed Store.
type PostgresStore struct {
	db        *sql.DB
	customers *postgresRecords[model.Customer]
	products  *postgresRecords[model.Product]
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore opens a connection pool for dsn, checks it and creates
// the schema if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return &PostgresStore{
		db:        db,
		customers: &postgresRecords[model.Customer]{db: db},
		products:  &postgresRecords[model.Product]{db: db},
	}, nil
}

func (s *PostgresStore) Customers() RecordStore[model.Customer] { return s.customers }
func (s *PostgresStore) Products() RecordStore[model.Product]   { return s.products }

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type postgresRecords[T model.Record] struct {
	db *sql.DB
}

func (s *postgresRecords[T]) kind() string {
	var zero T
	return zero.Kind()
}

func (s *postgresRecords[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM bite_records WHERE kind = $1 ORDER BY seq`, s.kind())
	if err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", s.kind(), err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", s.kind(), err)
		}
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", s.kind(), err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *postgresRecords[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM bite_records WHERE kind = $1 AND id = $2`, s.kind(), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return out, notFound[T](id)
	}
	if err != nil {
		return out, fmt.Errorf("postgres: get %s %q: %w", s.kind(), id, err)
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("unmarshal %s %q: %w", s.kind(), id, err)
	}
	return out, nil
}

func (s *postgresRecords[T]) Create(ctx context.Context, record T) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bite_records (kind, id, doc) VALUES ($1, $2, $3)`,
		s.kind(), record.RecordID(), string(doc))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return alreadyExists[T](record.RecordID())
	}
	if err != nil {
		return fmt.Errorf("postgres: create %s: %w", s.kind(), err)
	}
	return nil
}

func (s *postgresRecords[T]) Update(ctx context.Context, record T) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE bite_records SET doc = $3, updated_at = now() WHERE kind = $1 AND id = $2`,
		s.kind(), record.RecordID(), string(doc))
	if err != nil {
		return fmt.Errorf("postgres: update %s: %w", s.kind(), err)
	}
	return requireRow[T](res, record.RecordID())
}

func (s *postgresRecords[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bite_records WHERE kind = $1 AND id = $2`, s.kind(), id)
	if err != nil {
		return fmt.Errorf("postgres: delete %s: %w", s.kind(), err)
	}
	return requireRow[T](res, id)
}

func requireRow[T model.Record](res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: rows affected: %w", err)
	}
	if n == 0 {
		return notFound[T](id)
	}
	return nil
}
