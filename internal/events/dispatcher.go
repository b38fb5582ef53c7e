package events

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Delivery failures.
var (
	ErrUnknownEvent    = errors.New("unknown event type")
	ErrPayloadMismatch = errors.New("event payload has unexpected type")
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans session events out to their subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe registers handler for types. With no types it receives every auth event.
	Subscribe(handler EventHandler, types ...EventType)
}

// Typed adapts fn to events whose payload is a P. A nil payload decodes to the zero P.
func Typed[P any](fn func(context.Context, Event, P) error) EventHandler {
	return func(ctx context.Context, event Event) error {
		var payload P
		if event.Payload != nil {
			p, ok := event.Payload.(P)
			if !ok {
				return fmt.Errorf("%w: %s carries %T", ErrPayloadMismatch, event.Type, event.Payload)
			}
			payload = p
		}
		return fn(ctx, event, payload)
	}
}

// sessionBus delivers synchronously, in subscription order.
type sessionBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewSessionBus returns an in-process Dispatcher.
func NewSessionBus() Dispatcher {
	return &sessionBus{handlers: make(map[EventType][]EventHandler)}
}

// Publish runs every handler subscribed to the event type. A failing or panicking
// handler does not stop the rest; their errors are joined.
func (b *sessionBus) Publish(ctx context.Context, event Event) error {
	if !event.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	b.mu.RLock()
	handlers := slices.Clone(b.handlers[event.Type])
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := deliver(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *sessionBus) Subscribe(handler EventHandler, types ...EventType) {
	if len(types) == 0 {
		types = AllAuthEvents
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range types {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

func deliver(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panicked: %v", event.Type, r)
		}
	}()
	return handler(ctx, event)
}
