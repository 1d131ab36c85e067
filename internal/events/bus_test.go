package events

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendingapi/internal/book"
)

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(8)

	var mu sync.Mutex
	var first, second []string

	bus.Subscribe(func(e book.Event) {
		mu.Lock()
		first = append(first, e.Name())
		mu.Unlock()
	})
	bus.Subscribe(func(e book.Event) {
		mu.Lock()
		second = append(second, e.Name())
		mu.Unlock()
	})

	b := book.New(uuid.New(), book.BookData{ISBN: "1234567890", Title: "x"})
	bus.Publish(book.AddedEvent{Book: b})
	bus.Publish(book.DeletedEvent{ID: b.ID})
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"BookAdded", "BookDeleted"}, first)
	assert.Equal(t, []string{"BookAdded", "BookDeleted"}, second)
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := NewBus(1)
	blocked := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once
	bus.Subscribe(func(book.Event) {
		once.Do(func() { close(blocked) })
		<-release
	})

	b := book.New(uuid.New(), book.BookData{ISBN: "1234567890", Title: "x"})
	bus.Publish(book.AddedEvent{Book: b}) // picked up by dispatch, handler stalls
	<-blocked
	bus.Publish(book.AddedEvent{Book: b}) // fills the buffer

	done := make(chan struct{})
	go func() {
		// buffer full: this one is dropped instead of blocking
		bus.Publish(book.AddedEvent{Book: b})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full bus")
	}

	close(release)
	bus.Close()
}

func TestBus_CloseDrainsQueuedEvents(t *testing.T) {
	bus := NewBus(8)

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(book.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	b := book.New(uuid.New(), book.BookData{ISBN: "1234567890", Title: "x"})
	for range 5 {
		bus.Publish(book.AddedEvent{Book: b})
	}
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 5, count)
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	bus := NewBus(1)
	bus.Close()
	bus.Close()
}
