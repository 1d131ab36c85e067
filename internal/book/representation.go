package book

import "github.com/google/uuid"

// Representation is the external projection of a book.
//
// Borrowed is only populated when the book is actually borrowed AND the
// caller is allowed to see lending detail. A non-privileged caller still sees
// "available": false but learns nothing about who borrowed the book or when.
type Representation struct {
	ID        uuid.UUID `json:"id"`
	Data      BookData  `json:"data"`
	Available bool      `json:"available"`
	Borrowed  *Borrowed `json:"borrowed,omitempty"`
}

// ToRepresentation derives the external view of a book.
func ToRepresentation(b Book, includeBorrowed bool) Representation {
	rep := Representation{
		ID:        b.ID,
		Data:      b.Data,
		Available: b.IsAvailable(),
	}
	if rep.Data.Authors == nil {
		rep.Data.Authors = []Author{}
	}
	if borrowed, ok := b.State.(Borrowed); ok && includeBorrowed {
		rep.Borrowed = &borrowed
	}
	return rep
}
