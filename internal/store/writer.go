package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrWriterFull is returned when an event is dropped because the queue is
// full. ErrWriterClosed is returned after Close.
var (
	ErrWriterFull   = errors.New("event queue is full")
	ErrWriterClosed = errors.New("event writer is closed")
)

// DefaultWriterQueue is the queue size used by the server.
const DefaultWriterQueue = 256

// EventWriter is an EventRepo whose appends are queued and written by a
// background goroutine, so callers never wait on SQLite. Reads go straight
// to the wrapped repo. Close drains the queue.
type EventWriter struct {
	EventRepo

	log    zerolog.Logger
	queue  chan LLMRequestEventData
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewEventWriter starts a writer over repo with room for size pending events.
func NewEventWriter(repo EventRepo, size int, log zerolog.Logger) *EventWriter {
	w := &EventWriter{
		EventRepo: repo,
		log:       log.With().Str("component", "event_writer").Logger(),
		queue:     make(chan LLMRequestEventData, max(size, 1)),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

// AppendLLMRequest queues data without blocking. The context only scopes
// the caller; the write itself outlives the request.
func (w *EventWriter) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWriterClosed
	}
	select {
	case w.queue <- data:
		return nil
	default:
		return ErrWriterFull
	}
}

func (w *EventWriter) run() {
	defer close(w.done)
	for data := range w.queue {
		if err := w.EventRepo.AppendLLMRequest(context.Background(), data); err != nil {
			w.log.Warn().Err(err).Str("request_id", data.RequestID).Msg("write event")
		}
	}
}

// Close stops accepting events and waits until queued ones are written.
func (w *EventWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	<-w.done
}
