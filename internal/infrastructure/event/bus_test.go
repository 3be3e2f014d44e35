package event

import (
	"context"
	"errors"
	"testing"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func newTestEvent(eventType string) shared.DomainEvent {
	event := shared.NewBaseDomainEvent(eventType, "Order", uuid.New())
	return &event
}

func TestInMemoryEventBusPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"OrderCreated"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))

		require.Len(t, handler.received, 1)
		assert.Equal(t, "OrderCreated", handler.received[0].EventType())
	})

	t.Run("skips handlers of other event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"OrderCompleted"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))

		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx,
			newTestEvent("OrderCreated"),
			newTestEvent("OrderCompleted"),
		))

		assert.Len(t, handler.received, 2)
	})

	t.Run("explicit subscription overrides handler defaults", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"OrderCreated"}}
		bus.Subscribe(handler, "OrderCancelled")

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))
		assert.Empty(t, handler.received)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCancelled")))
		assert.Len(t, handler.received, 1)
	})

	t.Run("failing handler does not block the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{err: errors.New("boom")}
		healthy := &recordingHandler{}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))

		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{panics: true}
		healthy := &recordingHandler{}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))

		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handler no longer receives events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"OrderCreated"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderCreated")))

		assert.Empty(t, handler.received)
	})
}

func TestInMemoryEventBusLifecycle(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}
