package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingapi/internal/cover"
)

// CoverPG stores cover blobs in Postgres, one row per book ID.
type CoverPG struct {
	db *pgxpool.Pool
}

func NewCoverPG(db *pgxpool.Pool) *CoverPG {
	return &CoverPG{db: db}
}

func (r *CoverPG) Put(ctx context.Context, id uuid.UUID, data cover.Data) error {
	const query = `
	INSERT INTO covers (book_id, content, content_type, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (book_id) DO UPDATE SET
		content = EXCLUDED.content,
		content_type = EXCLUDED.content_type,
		updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, id, data.Content, data.ContentType); err != nil {
		return fmt.Errorf("put cover: %w", err)
	}
	return nil
}

func (r *CoverPG) Get(ctx context.Context, id uuid.UUID) (cover.Data, error) {
	const query = `SELECT content, content_type FROM covers WHERE book_id = $1`

	var data cover.Data
	err := r.db.QueryRow(ctx, query, id).Scan(&data.Content, &data.ContentType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cover.Data{}, cover.ErrNotFound
		}
		return cover.Data{}, fmt.Errorf("get cover: %w", err)
	}
	return data, nil
}
