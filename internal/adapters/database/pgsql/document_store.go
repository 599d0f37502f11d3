// Package pgsql persists each collection as a single JSONB document in the
// collections table. Writes replace the whole document (last-writer-wins);
// the services serialize their own mutations, so the store never sees two
// concurrent writers for the same collection.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	collectionClients  = "clients"
	collectionProducts = "products"
	collectionAccounts = "accounts"
)

// documentStore reads and replaces one named collection document.
type documentStore struct {
	pool *pgxpool.Pool
	name string
}

// load unmarshals the collection document into dest. A collection that was
// never written is an empty collection, not an error.
func (s *documentStore) load(ctx context.Context, dest any) error {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM collections WHERE name = $1;`, s.name).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", s.name, err)
	}
	if err := json.Unmarshal(doc, dest); err != nil {
		return fmt.Errorf("failed to decode collection %s: %w", s.name, err)
	}
	return nil
}

// replace overwrites the whole collection document.
func (s *documentStore) replace(ctx context.Context, src any) error {
	doc, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", s.name, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO collections (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now();
	`, s.name, doc)
	if err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", s.name, err)
	}
	return nil
}
