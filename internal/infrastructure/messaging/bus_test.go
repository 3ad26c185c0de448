package messaging

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus(testLogger(t))

	var mu sync.Mutex
	got := map[string]events.Kind{}

	for _, name := range []string{"a", "b", "c"} {
		name := name
		bus.Subscribe(name, func(msg events.Message) {
			mu.Lock()
			got[name] = msg.Kind()
			mu.Unlock()
		})
	}

	bus.Publish(events.EditModeChanged{Enabled: true})

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 3)
	for name, kind := range got {
		assert.Equal(t, events.KindEditModeChanged, kind, "subscriber %s", name)
	}
}

func TestBusNoReplayForLateSubscribers(t *testing.T) {
	bus := NewBus(testLogger(t))

	bus.Publish(events.EditModeChanged{Enabled: true})

	var received []events.Message
	bus.Subscribe("late", func(msg events.Message) {
		received = append(received, msg)
	})

	// The earlier broadcast must not be replayed.
	assert.Empty(t, received)

	bus.Publish(events.SaveRequested{})
	require.Len(t, received, 1)
	assert.Equal(t, events.KindSaveRequested, received[0].Kind())
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(testLogger(t))

	count := 0
	bus.Subscribe("x", func(events.Message) { count++ })

	bus.Publish(events.AuthRevoked{})
	bus.Unsubscribe("x")
	bus.Publish(events.AuthRevoked{})

	assert.Equal(t, 1, count)
}

func TestBusSubscribeReplacesByName(t *testing.T) {
	bus := NewBus(testLogger(t))

	first, second := 0, 0
	bus.Subscribe("x", func(events.Message) { first++ })
	bus.Subscribe("x", func(events.Message) { second++ })

	bus.Publish(events.AuthRevoked{})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, bus.SubscriberCount())
}

func TestBusChannelSubscriber(t *testing.T) {
	bus := NewBus(testLogger(t))

	ch := bus.SubscribeChan("viewer")
	bus.Publish(events.AuthGranted{Operator: content.Operator{ID: "op1", Email: "a@b.c"}})

	select {
	case msg := <-ch:
		granted, ok := msg.(events.AuthGranted)
		require.True(t, ok)
		assert.Equal(t, "a@b.c", granted.Operator.Email)
	case <-time.After(time.Second):
		t.Fatal("no message delivered to channel subscriber")
	}

	bus.UnsubscribeChan("viewer")
	_, open := <-ch
	assert.False(t, open, "channel should close on unsubscribe")
}

func TestBusDropOnFullChannel(t *testing.T) {
	bus := NewBus(testLogger(t))

	bus.SubscribeChan("slow")

	// Flood well past the channel buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(events.SaveRequested{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full channel subscriber")
	}
}
