// Package events carries [models.EntityChanged] notifications from the
// service layer to in-process subscribers: the structured log and the
// websocket stream served at /api/events.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
)

const defaultBufferSize = 256

// Handler processes a change event. Implementations must be safe for
// concurrent use.
type Handler interface {
	HandleEvent(ctx context.Context, evt models.EntityChanged) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt models.EntityChanged) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt models.EntityChanged) error {
	return f(ctx, evt)
}

// Publisher is the side of the bus the services see.
type Publisher interface {
	Publish(ctx context.Context, evt models.EntityChanged)
}

// Bus dispatches events to every subscriber from a single goroutine.
// Publish never blocks: when the buffer is full the event is dropped.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler

	events chan models.EntityChanged
	now    func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

func NewBus(cfg config.Workers, logger *logger.Logger) *Bus {
	size := cfg.EventBufferSize
	if size < 1 {
		size = defaultBufferSize
	}

	logger.Debug().Int("buffer_size", size).Msg("creating event bus")
	return &Bus{
		events: make(chan models.EntityChanged, size),
		now:    time.Now,
		logger: logger,
	}
}

// Subscribe registers a named handler. Handlers added after Run see only
// events dispatched from then on.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

func (b *Bus) Publish(ctx context.Context, evt models.EntityChanged) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = b.now().UTC()
	}

	select {
	case b.events <- evt:
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "*Bus.Publish").
			Str("entity_type", string(evt.EntityType)).
			Str("action", string(evt.Action)).
			Int64("id", evt.ID).
			Msg("event buffer is full, dropping event")
	}
}

// Run starts the consumer goroutine. It stops when ctx is cancelled or Stop
// is called, dispatching whatever is still buffered first.
func (b *Bus) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		dispatchCtx := b.logger.WithContext(context.WithoutCancel(runCtx))

		for {
			select {
			case evt := <-b.events:
				b.dispatch(dispatchCtx, evt)
			case <-runCtx.Done():
				for {
					select {
					case evt := <-b.events:
						b.dispatch(dispatchCtx, evt)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop waits for the consumer goroutine to finish.
func (b *Bus) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}

func (b *Bus) dispatch(ctx context.Context, evt models.EntityChanged) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			b.logger.Err(err).
				Str("func", "*Bus.dispatch").
				Str("subscriber", s.name).
				Str("entity_type", string(evt.EntityType)).
				Msg("event handler failed")
		}
	}
}
