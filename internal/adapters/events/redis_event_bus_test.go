package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareBus() *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		subscriptions: map[string]*redis.PubSub{},
		subscribers:   map[string]map[chan *entities.BookingEvent]struct{}{},
		ctx:           ctx,
		cancel:        cancel,
	}
}

func TestRedisEventBus_DispatchFansOut(t *testing.T) {
	bus := newBareBus()
	a := make(chan *entities.BookingEvent, 1)
	b := make(chan *entities.BookingEvent, 1)
	bus.subscribers["bookings:events"] = map[chan *entities.BookingEvent]struct{}{a: {}, b: {}}

	event := entities.NewBookingEvent(&entities.Booking{ID: "bk-1", HospitalID: "1", Status: entities.BookingStatusPending}, entities.BookingEventCreated)
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	bus.dispatch("bookings:events", payload)

	for _, ch := range []chan *entities.BookingEvent{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, event.ID, got.ID)
			assert.Equal(t, "bk-1", got.BookingID)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestRedisEventBus_DispatchSkipsFullSubscriber(t *testing.T) {
	bus := newBareBus()
	full := make(chan *entities.BookingEvent)
	bus.subscribers["c"] = map[chan *entities.BookingEvent]struct{}{full: {}}

	assert.NotPanics(t, func() {
		bus.dispatch("c", []byte(`{"id":"e1"}`))
		bus.dispatch("c", []byte(`not json`))
	})
}

func TestRedisEventBus_RemoveSubscriberClosesChannel(t *testing.T) {
	bus := newBareBus()
	ch := make(chan *entities.BookingEvent, 1)
	bus.subscribers["c"] = map[chan *entities.BookingEvent]struct{}{ch: {}}

	bus.removeSubscriber("c", ch)

	_, open := <-ch
	assert.False(t, open)
	assert.NotContains(t, bus.subscribers, "c")
}
