package enrichment

import (
	"context"
	"log"
	"time"

	"lendingapi/internal/book"
)

// Listener reacts to AddedEvents by merging looked-up metadata into the
// stored book. It runs off the event bus, decoupled from the add-book
// request: lookup or update failures are logged and go nowhere else.
type Listener struct {
	source  Source
	repo    book.Repository
	timeout time.Duration
}

func NewListener(source Source, repo book.Repository) *Listener {
	return &Listener{source: source, repo: repo, timeout: 30 * time.Second}
}

// Handle is the event bus subscription entry point.
func (l *Listener) Handle(event book.Event) {
	added, ok := event.(book.AddedEvent)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	isbn := added.Book.Data.ISBN
	data, err := l.source.ByISBN(ctx, isbn)
	if err != nil {
		log.Printf("enrichment lookup failed isbn=%s err=%v", isbn, err)
		return
	}
	if data == nil {
		log.Printf("enrichment no data isbn=%s", isbn)
		return
	}

	_, err = l.repo.Update(ctx, added.Book.ID, func(b book.Book) (book.Book, error) {
		return merge(b, data), nil
	})
	if err != nil {
		log.Printf("enrichment update failed id=%s err=%v", added.Book.ID, err)
		return
	}
	log.Printf("enrichment applied id=%s isbn=%s", added.Book.ID, isbn)
}

// merge overwrites the page count and authors with the looked-up values and
// leaves everything else alone.
func merge(b book.Book, data *Data) book.Book {
	b.Data.NumberOfPages = data.NumberOfPages
	b.Data.Authors = book.NormalizeAuthors(data.Authors)
	return b
}
