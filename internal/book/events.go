package book

import "github.com/google/uuid"

// Event is a domain event produced by the collection. The set is closed:
// Added, Borrowed, Returned and Deleted are the only implementations.
type Event interface {
	Name() string
}

// AddedEvent is published when a new book enters the collection.
type AddedEvent struct {
	Book Book
}

// BorrowedEvent is published when a book was successfully borrowed.
type BorrowedEvent struct {
	Book Book
}

// ReturnedEvent is published when a book was successfully returned.
type ReturnedEvent struct {
	Book Book
}

// DeletedEvent is published when a book was actually removed.
type DeletedEvent struct {
	ID uuid.UUID
}

func (AddedEvent) Name() string    { return "BookAdded" }
func (BorrowedEvent) Name() string { return "BookBorrowed" }
func (ReturnedEvent) Name() string { return "BookReturned" }
func (DeletedEvent) Name() string  { return "BookDeleted" }
