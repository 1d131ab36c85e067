// Package cover stores and serves book cover images. Covers are associated
// with a book ID but live independently of the book record: deleting a book
// does not remove its cover.
package cover

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no cover is stored for a book ID.
var ErrNotFound = errors.New("cover not found")

// Data is a stored cover image.
type Data struct {
	Content     []byte
	ContentType string
}

// Store is an opaque blob store keyed by book ID. Put overwrites any
// existing cover.
type Store interface {
	Put(ctx context.Context, id uuid.UUID, data Data) error
	Get(ctx context.Context, id uuid.UUID) (Data, error)
}

// Service provides cover handling on top of a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Save(ctx context.Context, id uuid.UUID, data Data) error {
	return s.store.Put(ctx, id, data)
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Data, error) {
	return s.store.Get(ctx, id)
}
