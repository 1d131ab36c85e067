package book

import (
	"context"

	"github.com/google/uuid"
)

// fakeRepo is an in-package, map-backed Repository for service and handler
// tests.
type fakeRepo struct {
	books     map[uuid.UUID]Book
	insertErr error
	updateErr error
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: make(map[uuid.UUID]Book)}
}

func (r *fakeRepo) Insert(_ context.Context, b Book) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.books[b.ID] = b
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (Book, error) {
	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, fn Transform) (Book, error) {
	if r.updateErr != nil {
		return Book{}, r.updateErr
	}
	current, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	updated, err := fn(current)
	if err != nil {
		return Book{}, err
	}
	r.books[id] = updated
	return updated, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.books[id]; !ok {
		return false, nil
	}
	delete(r.books, id)
	return true, nil
}

// recordingPublisher captures every published event in order.
type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(event Event) {
	p.events = append(p.events, event)
}
