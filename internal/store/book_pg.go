package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingapi/internal/book"
)

// ErrConcurrencyConflict is returned when an optimistic update loses the race
// on every attempt. It is an infrastructure fault, not a business failure.
var ErrConcurrencyConflict = errors.New("concurrency conflict, book version changed on every attempt")

const updateAttempts = 3

// BookPG stores books in Postgres. Each row carries a version counter;
// updates are compare-and-swap writes against the version that was read, so
// concurrent updates of the same book can never both succeed against the
// same prior state.
type BookPG struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewBookPG(db *pgxpool.Pool, now func() time.Time) *BookPG {
	return &BookPG{db: db, now: now}
}

func (r *BookPG) Insert(ctx context.Context, b book.Book) error {
	const query = `
	INSERT INTO books (id, isbn, title, number_of_pages, authors, borrowed_by, borrowed_at, created, last_updated, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, 1)
	`
	borrowedBy, borrowedAt := borrowedColumns(b.State)
	_, err := r.db.Exec(ctx, query,
		b.ID, string(b.Data.ISBN), string(b.Data.Title), pagesColumn(b.Data.NumberOfPages),
		authorsColumn(b.Data.Authors), borrowedBy, borrowedAt, r.now(),
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookPG) Get(ctx context.Context, id uuid.UUID) (book.Book, error) {
	b, _, err := r.getWithVersion(ctx, id)
	return b, err
}

func (r *BookPG) Update(ctx context.Context, id uuid.UUID, fn book.Transform) (book.Book, error) {
	for attempt := 0; attempt < updateAttempts; attempt++ {
		current, version, err := r.getWithVersion(ctx, id)
		if err != nil {
			return book.Book{}, err
		}

		updated, err := fn(current)
		if err != nil {
			return book.Book{}, err
		}

		const query = `
		UPDATE books
		SET isbn = $1, title = $2, number_of_pages = $3, authors = $4,
		    borrowed_by = $5, borrowed_at = $6, last_updated = $7, version = version + 1
		WHERE id = $8 AND version = $9
		`
		borrowedBy, borrowedAt := borrowedColumns(updated.State)
		tag, err := r.db.Exec(ctx, query,
			string(updated.Data.ISBN), string(updated.Data.Title), pagesColumn(updated.Data.NumberOfPages),
			authorsColumn(updated.Data.Authors), borrowedBy, borrowedAt, r.now(), id, version,
		)
		if err != nil {
			return book.Book{}, fmt.Errorf("update book: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return updated, nil
		}
		// Version moved under us; re-read and re-run the transform.
	}
	return book.Book{}, ErrConcurrencyConflict
}

func (r *BookPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookPG) getWithVersion(ctx context.Context, id uuid.UUID) (book.Book, int64, error) {
	const query = `
	SELECT isbn, title, number_of_pages, authors, borrowed_by, borrowed_at, version
	FROM books
	WHERE id = $1
	`
	var (
		isbn       string
		title      string
		pages      *int
		authors    []string
		borrowedBy *string
		borrowedAt *time.Time
		version    int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&isbn, &title, &pages, &authors, &borrowedBy, &borrowedAt, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, 0, book.ErrNotFound
		}
		return book.Book{}, 0, fmt.Errorf("get book: %w", err)
	}

	return rowToBook(id, isbn, title, pages, authors, borrowedBy, borrowedAt), version, nil
}

// rowToBook reconstructs the closed state variant from the denormalized
// borrowed columns: absent means Available.
func rowToBook(id uuid.UUID, isbn, title string, pages *int, authors []string, borrowedBy *string, borrowedAt *time.Time) book.Book {
	data := book.BookData{
		ISBN:  book.ISBN(isbn),
		Title: book.Title(title),
	}
	if pages != nil {
		p := book.NumberOfPages(*pages)
		data.NumberOfPages = &p
	}
	as := make([]book.Author, 0, len(authors))
	for _, a := range authors {
		as = append(as, book.Author(a))
	}
	data.Authors = as

	var state book.State = book.Available{}
	if borrowedBy != nil && borrowedAt != nil {
		state = book.Borrowed{By: book.Borrower(*borrowedBy), At: *borrowedAt}
	}
	return book.Book{ID: id, Data: data, State: state}
}

func borrowedColumns(state book.State) (*string, *time.Time) {
	if borrowed, ok := state.(book.Borrowed); ok {
		by := string(borrowed.By)
		at := borrowed.At
		return &by, &at
	}
	return nil, nil
}

func pagesColumn(pages *book.NumberOfPages) *int {
	if pages == nil {
		return nil
	}
	p := int(*pages)
	return &p
}

func authorsColumn(authors []book.Author) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		out = append(out, string(a))
	}
	return out
}
