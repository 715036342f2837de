package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
)

// datasetCache implements driven.DatasetCache.
type datasetCache struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time
}

var _ driven.DatasetCache = (*datasetCache)(nil)

// Get loads a dataset and its records in position order.
func (c *datasetCache) Get(ctx context.Context, categoryID string) (*domain.Dataset, error) {
	var (
		name      string
		loadedAt  int64
		expiresAt int64
	)
	err := c.store.db.QueryRowContext(ctx,
		"SELECT category_name, loaded_at, expires_at FROM datasets WHERE category_id = ?",
		categoryID,
	).Scan(&name, &loadedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}

	if expiresAt != 0 && c.now().UnixNano() >= expiresAt {
		if err := c.Delete(ctx, categoryID); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, text, search_volume, product_count, competition, trend, is_brand, search_type
		FROM keywords WHERE category_id = ? ORDER BY position`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	records := []domain.KeywordRecord{}
	for rows.Next() {
		var (
			r         domain.KeywordRecord
			trendJSON string
		)
		if err := rows.Scan(&r.ID, &r.Text, &r.SearchVolume, &r.ProductCount,
			&r.Competition, &trendJSON, &r.IsBrand, &r.SearchType); err != nil {
			return nil, fmt.Errorf("scanning keyword: %w", err)
		}
		if err := json.Unmarshal([]byte(trendJSON), &r.Trend); err != nil {
			return nil, fmt.Errorf("decoding trend for %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keywords: %w", err)
	}

	return &domain.Dataset{
		CategoryID:   categoryID,
		CategoryName: name,
		Records:      records,
		LoadedAt:     time.Unix(0, loadedAt).UTC(),
	}, nil
}

// Put replaces the category's snapshot in one transaction.
func (c *datasetCache) Put(ctx context.Context, dataset *domain.Dataset) error {
	if dataset == nil {
		return domain.ErrInvalidInput
	}

	var expiresAt int64
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl).UnixNano()
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE category_id = ?", dataset.CategoryID); err != nil {
		return fmt.Errorf("clearing dataset: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO datasets (category_id, category_name, loaded_at, expires_at) VALUES (?, ?, ?, ?)",
		dataset.CategoryID, dataset.CategoryName, dataset.LoadedAt.UnixNano(), expiresAt,
	); err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO keywords (category_id, position, id, text, search_volume, product_count,
			competition, trend, is_brand, search_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing keyword insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range dataset.Records {
		trendJSON, err := json.Marshal(r.Trend)
		if err != nil {
			return fmt.Errorf("encoding trend for %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			dataset.CategoryID, i, r.ID, r.Text, r.SearchVolume, r.ProductCount,
			string(r.Competition), string(trendJSON), r.IsBrand, string(r.SearchType),
		); err != nil {
			return fmt.Errorf("inserting keyword %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes a dataset; its keywords cascade.
func (c *datasetCache) Delete(ctx context.Context, categoryID string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM datasets WHERE category_id = ?", categoryID); err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (c *datasetCache) Close() error {
	return c.store.Close()
}
