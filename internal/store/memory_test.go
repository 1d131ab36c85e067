package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendingapi/internal/book"
	"lendingapi/internal/cover"
)

func insertTestBook(t *testing.T, repo *BookMemory) book.Book {
	t.Helper()
	b := book.New(uuid.New(), book.BookData{ISBN: "978-0132350884", Title: "Clean Code"})
	require.NoError(t, repo.Insert(context.Background(), b))
	return b
}

func TestBookMemory_InsertGet(t *testing.T) {
	repo := NewBookMemory(time.Now)
	b := insertTestBook(t, repo)

	got, err := repo.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestBookMemory_Update(t *testing.T) {
	repo := NewBookMemory(time.Now)
	b := insertTestBook(t, repo)

	t.Run("applies transform and persists", func(t *testing.T) {
		updated, err := repo.Update(context.Background(), b.ID, func(current book.Book) (book.Book, error) {
			return current.ChangeState(book.Borrowed{By: "Aegon", At: time.Now()})
		})
		require.NoError(t, err)
		assert.False(t, updated.IsAvailable())

		stored, err := repo.Get(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("failing transform aborts and keeps stored state", func(t *testing.T) {
		before, err := repo.Get(context.Background(), b.ID)
		require.NoError(t, err)

		_, err = repo.Update(context.Background(), b.ID, func(current book.Book) (book.Book, error) {
			return current.ChangeState(book.Borrowed{By: "Rhaenyra", At: time.Now()})
		})
		var transition *book.IllegalTransitionError
		require.ErrorAs(t, err, &transition)

		after, err := repo.Get(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.Update(context.Background(), uuid.New(), func(current book.Book) (book.Book, error) {
			return current, nil
		})
		assert.ErrorIs(t, err, book.ErrNotFound)
	})
}

func TestBookMemory_ConcurrentBorrow_OneWinner(t *testing.T) {
	repo := NewBookMemory(time.Now)
	b := insertTestBook(t, repo)

	const borrowers = 16
	var wg sync.WaitGroup
	results := make(chan error, borrowers)

	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(context.Background(), b.ID, func(current book.Book) (book.Book, error) {
				return current.ChangeState(book.Borrowed{By: "racer", At: time.Now()})
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var transition *book.IllegalTransitionError
		if errors.As(err, &transition) {
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent borrow may succeed")
	assert.Equal(t, borrowers-1, conflicts)
}

func TestBookMemory_Delete(t *testing.T) {
	repo := NewBookMemory(time.Now)
	b := insertTestBook(t, repo)

	deleted, err := repo.Delete(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete reports nothing removed")
}

func TestCoverMemory(t *testing.T) {
	repo := NewCoverMemory()
	id := uuid.New()

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, cover.ErrNotFound)

	data := cover.Data{Content: []byte("png-bytes"), ContentType: "image/png"}
	require.NoError(t, repo.Put(context.Background(), id, data))

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Put overwrites
	replacement := cover.Data{Content: []byte("jpeg-bytes"), ContentType: "image/jpeg"}
	require.NoError(t, repo.Put(context.Background(), id, replacement))
	got, err = repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}
