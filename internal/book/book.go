package book

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookData holds the descriptive data of a book.
type BookData struct {
	ISBN          ISBN           `json:"isbn"`
	Title         Title          `json:"title"`
	NumberOfPages *NumberOfPages `json:"numberOfPages,omitempty"`
	Authors       []Author       `json:"authors"`
}

// State is the lending state of a book. It is a closed set: the only
// implementations are Available and Borrowed, and exactly one of them holds
// at any time.
type State interface {
	isState()
}

// Available marks a book as borrowable.
type Available struct{}

// Borrowed marks a book as lent out.
type Borrowed struct {
	By Borrower  `json:"by"`
	At time.Time `json:"at"`
}

func (Available) isState() {}
func (Borrowed) isState()  {}

// Book is the aggregate root of the lending domain.
type Book struct {
	ID    uuid.UUID
	Data  BookData
	State State
}

// New constructs a book in the Available state.
func New(id uuid.UUID, data BookData) Book {
	data.Authors = NormalizeAuthors(data.Authors)
	return Book{ID: id, Data: data, State: Available{}}
}

// IllegalTransitionError signals that a requested state change is not legal
// given the book's current state. It is raised by ChangeState inside a
// repository update and translated into a business failure by the caller.
type IllegalTransitionError struct {
	ID     uuid.UUID
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("book with ID [%s] is %s", e.ID, e.Reason)
}

// ChangeState returns a copy of the book with the requested state. Borrowing
// is only legal from Available, returning only from Borrowed. The receiver is
// never modified.
func (b Book) ChangeState(newState State) (Book, error) {
	switch newState.(type) {
	case Available:
		if _, borrowed := b.State.(Borrowed); !borrowed {
			return Book{}, &IllegalTransitionError{ID: b.ID, Reason: "not borrowed"}
		}
	case Borrowed:
		if _, available := b.State.(Available); !available {
			return Book{}, &IllegalTransitionError{ID: b.ID, Reason: "not available"}
		}
	}
	b.State = newState
	return b, nil
}

// IsAvailable reports whether the book can currently be borrowed.
func (b Book) IsAvailable() bool {
	_, ok := b.State.(Available)
	return ok
}
