package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// ContentRepo implements domain.ContentStore on the mirrored documents table.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) Exists(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM content_items WHERE id = $1 AND reactable)`,
		itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check content item: %w", err)
	}
	return exists, nil
}

func (r *ContentRepo) ListItemIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM content_items WHERE reactable ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content item ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan content item id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content item ids: %w", err)
	}
	return ids, nil
}

func (r *ContentRepo) ListItems(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doc_type, slug, title, team, published_at
		 FROM content_items WHERE reactable
		 ORDER BY published_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContentItem, error) {
		var item domain.ContentItem
		err := row.Scan(&item.ID, &item.Type, &item.Slug, &item.Title, &item.Team, &item.PublishedAt)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect content items: %w", err)
	}
	return items, nil
}

// Upsert mirrors one content document into the table. Used by the content
// sync path and by tests; the reaction protocol itself never writes here.
func (r *ContentRepo) Upsert(ctx context.Context, item domain.ContentItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO content_items (id, doc_type, slug, title, team, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     doc_type = EXCLUDED.doc_type,
		     slug = EXCLUDED.slug,
		     title = EXCLUDED.title,
		     team = EXCLUDED.team,
		     published_at = EXCLUDED.published_at,
		     updated_at = now()`,
		item.ID, item.Type, item.Slug, item.Title, item.Team, item.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content item: %w", err)
	}
	return nil
}
