// Package events provides the in-process event bus connecting the book
// collection to its listeners. Publication is fire-and-forget: the publisher
// never blocks on, or learns the outcome of, event handling.
package events

import (
	"log"
	"sync"

	"lendingapi/internal/book"
)

// Handler consumes a single domain event. Handlers run on the bus dispatch
// goroutine, off the request path; a slow handler delays later events but
// never a caller of Publish.
type Handler func(event book.Event)

// Bus is a buffered, typed, in-process event bus. It implements
// book.EventPublisher.
type Bus struct {
	ch       chan book.Event
	handlers []Handler
	mu       sync.Mutex
	done     chan struct{}
	once     sync.Once
}

// NewBus creates a bus with the given buffer size and starts its dispatch
// goroutine.
func NewBus(buffer int) *Bus {
	b := &Bus{
		ch:   make(chan book.Event, buffer),
		done: make(chan struct{}),
	}
	go b.dispatch()
	return b
}

// Subscribe registers a handler for all events. Subscriptions must happen
// before traffic; there is no unsubscribe.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish enqueues an event without blocking. If the buffer is full the event
// is dropped and logged; the bus has no backpressure contract.
func (b *Bus) Publish(event book.Event) {
	select {
	case b.ch <- event:
	default:
		log.Printf("event bus full, dropping event=%s", event.Name())
	}
}

// Close stops the dispatch goroutine after draining already-queued events.
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.ch)
		<-b.done
	})
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for event := range b.ch {
		b.mu.Lock()
		handlers := make([]Handler, len(b.handlers))
		copy(handlers, b.handlers)
		b.mu.Unlock()

		for _, h := range handlers {
			h(event)
		}
	}
}
