package book

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Collection provides all interactions with the managed books. Role checks
// happen in the HTTP layer before any of these methods run; the collection
// itself only orchestrates state transitions, storage and event publication.
type Collection struct {
	repo      Repository
	publisher EventPublisher
	newID     func() uuid.UUID
	now       func() time.Time
}

// NewCollection creates a collection service. The clock and ID generator are
// injected so that tests stay deterministic.
func NewCollection(repo Repository, publisher EventPublisher, newID func() uuid.UUID, now func() time.Time) *Collection {
	return &Collection{repo: repo, publisher: publisher, newID: newID, now: now}
}

// Add creates a new available book with the given data, stores it and
// publishes an AddedEvent. Repository and publisher faults surface to the
// caller unmodified; a publish fault after a successful insert leaves the
// book persisted.
func (c *Collection) Add(ctx context.Context, data BookData) (Book, error) {
	b := New(c.newID(), data)
	log.Printf("book add id=%s isbn=%s", b.ID, data.ISBN)
	if err := c.repo.Insert(ctx, b); err != nil {
		return Book{}, fmt.Errorf("insert book %s: %w", b.ID, err)
	}
	c.publisher.Publish(AddedEvent{Book: b})
	return b, nil
}

// Get looks up a book by ID. Absence is reported as ErrNotFound; it is a
// normal answer, not a fault.
func (c *Collection) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	return c.repo.Get(ctx, id)
}

// Borrow transitions a book to Borrowed and publishes a BorrowedEvent.
// Fails with ErrNotFound if no such book exists and with ErrUpdateConflict if
// the book is not currently available. The event is published only on
// success.
func (c *Collection) Borrow(ctx context.Context, id uuid.UUID, borrower Borrower) (Book, error) {
	log.Printf("book borrow id=%s", id)
	newState := Borrowed{By: borrower, At: c.now()}
	updated, err := c.repo.Update(ctx, id, func(b Book) (Book, error) {
		return b.ChangeState(newState)
	})
	if err != nil {
		return Book{}, classifyUpdateError("borrow", id, err)
	}
	c.publisher.Publish(BorrowedEvent{Book: updated})
	return updated, nil
}

// Return transitions a book back to Available and publishes a ReturnedEvent.
// Same failure taxonomy as Borrow; ErrUpdateConflict here means the book was
// not borrowed.
func (c *Collection) Return(ctx context.Context, id uuid.UUID) (Book, error) {
	log.Printf("book return id=%s", id)
	updated, err := c.repo.Update(ctx, id, func(b Book) (Book, error) {
		return b.ChangeState(Available{})
	})
	if err != nil {
		return Book{}, classifyUpdateError("return", id, err)
	}
	c.publisher.Publish(ReturnedEvent{Book: updated})
	return updated, nil
}

// Delete removes a book by ID and publishes a DeletedEvent if something was
// actually removed. Deleting a non-existent ID is a successful no-op without
// an event.
func (c *Collection) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if !deleted {
		log.Printf("book delete id=%s nothing to delete", id)
		return nil
	}
	c.publisher.Publish(DeletedEvent{ID: id})
	return nil
}

// classifyUpdateError maps repository update outcomes onto the two business
// failures callers must distinguish. Everything else passes through as an
// infrastructure fault.
func classifyUpdateError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var transition *IllegalTransitionError
	if errors.As(err, &transition) {
		return fmt.Errorf("%s book %s: %w: %s", op, id, ErrUpdateConflict, transition.Reason)
	}
	return fmt.Errorf("%s book %s: %w", op, id, err)
}
