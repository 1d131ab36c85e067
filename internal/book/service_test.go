package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCollection(repo Repository, publisher EventPublisher) *Collection {
	return NewCollection(repo, publisher, uuid.New, func() time.Time { return fixedTime })
}

func TestCollection_Add(t *testing.T) {
	t.Run("creates available book and publishes AddedEvent", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)

		assert.True(t, created.IsAvailable())
		assert.NotEqual(t, uuid.Nil, created.ID)

		stored, err := repo.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, stored)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, AddedEvent{Book: created}, publisher.events[0])
	})

	t.Run("insert fault surfaces and suppresses the event", func(t *testing.T) {
		repo := newFakeRepo()
		repo.insertErr = errors.New("connection lost")
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		_, err := collection.Add(context.Background(), testData())
		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})
}

func TestCollection_Get(t *testing.T) {
	repo := newFakeRepo()
	publisher := &recordingPublisher{}
	collection := newTestCollection(repo, publisher)

	created, err := collection.Add(context.Background(), testData())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := collection.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("absent is ErrNotFound", func(t *testing.T) {
		_, err := collection.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCollection_Borrow(t *testing.T) {
	t.Run("success uses the injected clock and publishes once", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		publisher.events = nil

		borrowed, err := collection.Borrow(context.Background(), created.ID, "Aegon")
		require.NoError(t, err)

		state, ok := borrowed.State.(Borrowed)
		require.True(t, ok)
		assert.Equal(t, Borrower("Aegon"), state.By)
		assert.Equal(t, fixedTime, state.At)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, BorrowedEvent{Book: borrowed}, publisher.events[0])
	})

	t.Run("unknown id is ErrNotFound, no event", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		_, err := collection.Borrow(context.Background(), uuid.New(), "Aegon")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, publisher.events)
	})

	t.Run("already borrowed is ErrUpdateConflict, no event", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		_, err = collection.Borrow(context.Background(), created.ID, "Aegon")
		require.NoError(t, err)
		publisher.events = nil

		_, err = collection.Borrow(context.Background(), created.ID, "Rhaenyra")
		assert.ErrorIs(t, err, ErrUpdateConflict)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Empty(t, publisher.events)
	})

	t.Run("repository fault passes through unclassified", func(t *testing.T) {
		repo := newFakeRepo()
		repo.updateErr = errors.New("connection lost")
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		_, err := collection.Borrow(context.Background(), uuid.New(), "Aegon")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUpdateConflict)
		assert.Empty(t, publisher.events)
	})
}

func TestCollection_Return(t *testing.T) {
	t.Run("success publishes ReturnedEvent once", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		_, err = collection.Borrow(context.Background(), created.ID, "Aegon")
		require.NoError(t, err)
		publisher.events = nil

		returned, err := collection.Return(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, returned.IsAvailable())

		require.Len(t, publisher.events, 1)
		assert.Equal(t, ReturnedEvent{Book: returned}, publisher.events[0])
	})

	t.Run("not borrowed is ErrUpdateConflict, no event", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		publisher.events = nil

		_, err = collection.Return(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrUpdateConflict)
		assert.Empty(t, publisher.events)
	})

	t.Run("unknown id is ErrNotFound, no event", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		_, err := collection.Return(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, publisher.events)
	})
}

func TestCollection_Delete(t *testing.T) {
	t.Run("publishes DeletedEvent when a book was removed", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		publisher.events = nil

		require.NoError(t, collection.Delete(context.Background(), created.ID))
		require.Len(t, publisher.events, 1)
		assert.Equal(t, DeletedEvent{ID: created.ID}, publisher.events[0])
	})

	t.Run("second delete is a silent no-op", func(t *testing.T) {
		repo := newFakeRepo()
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		created, err := collection.Add(context.Background(), testData())
		require.NoError(t, err)
		require.NoError(t, collection.Delete(context.Background(), created.ID))
		publisher.events = nil

		require.NoError(t, collection.Delete(context.Background(), created.ID))
		assert.Empty(t, publisher.events)
	})

	t.Run("repository fault surfaces", func(t *testing.T) {
		repo := newFakeRepo()
		repo.deleteErr = errors.New("connection lost")
		publisher := &recordingPublisher{}
		collection := newTestCollection(repo, publisher)

		err := collection.Delete(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})
}
