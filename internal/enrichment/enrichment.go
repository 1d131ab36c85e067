// Package enrichment augments newly added books with supplementary metadata
// looked up from an external book data service, keyed by ISBN. It is
// best-effort: nothing in here ever fails a caller request.
package enrichment

import (
	"context"

	"lendingapi/internal/book"
)

// Data is the supplementary metadata known for an ISBN.
type Data struct {
	ISBN          book.ISBN
	NumberOfPages *book.NumberOfPages
	Authors       []book.Author
}

// Source looks up enrichment data by ISBN. A (nil, nil) return means the
// source has no data for that ISBN, which is a normal answer. Errors mean the
// lookup itself failed and may succeed later.
type Source interface {
	ByISBN(ctx context.Context, isbn book.ISBN) (*Data, error)
}
