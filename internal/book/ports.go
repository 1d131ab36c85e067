package book

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no book exists for a given ID.
var ErrNotFound = errors.New("book not found")

// ErrUpdateConflict is returned by Borrow/Return when the book exists but is
// not in a state that allows the requested transition.
var ErrUpdateConflict = errors.New("book update conflict")

// Transform produces an updated book from the current one. It must be pure:
// the repository may re-run it when an optimistic write loses a race.
type Transform func(Book) (Book, error)

// Repository defines the contract for book storage.
//
// Update reads the current book, applies the transform and persists the
// result as a single logical unit: two concurrent updates of the same ID can
// never both succeed against the same prior state. Implementations use
// per-document versioning (compare-and-swap) or an equivalent serialization
// point. A failing transform aborts the update and its error is returned
// unwrapped.
type Repository interface {
	Insert(ctx context.Context, b Book) error
	Get(ctx context.Context, id uuid.UUID) (Book, error)
	Update(ctx context.Context, id uuid.UUID, fn Transform) (Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventPublisher broadcasts domain events. Publishing is fire-and-forget:
// there is no acknowledgment and no backpressure contract.
type EventPublisher interface {
	Publish(event Event)
}
