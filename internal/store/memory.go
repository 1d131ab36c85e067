package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lendingapi/internal/book"
	"lendingapi/internal/cover"
)

type memoryBook struct {
	book        book.Book
	created     time.Time
	lastUpdated time.Time
}

// BookMemory is an in-process book repository. A single mutex is the
// serialization point that makes read-transform-write updates atomic.
type BookMemory struct {
	mu    sync.Mutex
	books map[uuid.UUID]memoryBook
	now   func() time.Time
}

func NewBookMemory(now func() time.Time) *BookMemory {
	return &BookMemory{books: make(map[uuid.UUID]memoryBook), now: now}
}

func (r *BookMemory) Insert(_ context.Context, b book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.books[b.ID] = memoryBook{book: b, created: now, lastUpdated: now}
	return nil
}

func (r *BookMemory) Get(_ context.Context, id uuid.UUID) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return stored.book, nil
}

func (r *BookMemory) Update(_ context.Context, id uuid.UUID, fn book.Transform) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}

	updated, err := fn(stored.book)
	if err != nil {
		return book.Book{}, err
	}

	stored.book = updated
	stored.lastUpdated = r.now()
	r.books[id] = stored
	return updated, nil
}

func (r *BookMemory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return false, nil
	}
	delete(r.books, id)
	return true, nil
}

// CoverMemory is an in-process cover blob store.
type CoverMemory struct {
	mu     sync.Mutex
	covers map[uuid.UUID]cover.Data
}

func NewCoverMemory() *CoverMemory {
	return &CoverMemory{covers: make(map[uuid.UUID]cover.Data)}
}

func (r *CoverMemory) Put(_ context.Context, id uuid.UUID, data cover.Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.covers[id] = data
	return nil
}

func (r *CoverMemory) Get(_ context.Context, id uuid.UUID) (cover.Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.covers[id]
	if !ok {
		return cover.Data{}, cover.ErrNotFound
	}
	return data, nil
}
