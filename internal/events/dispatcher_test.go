package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoggedIn, "1", nil)))
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoggedOut, "1", nil)))
	assert.Equal(t, []EventType{EventLoggedIn}, got)
}

func TestDispatcher_HandlerFailureDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	var second bool
	d.Subscribe(EventLoggedOut, func(context.Context, Event) error { return boom })
	d.Subscribe(EventLoggedOut, func(context.Context, Event) error { second = true; return nil })

	err := d.Publish(context.Background(), NewEvent(EventLoggedOut, "", nil))
	assert.ErrorIs(t, err, boom)
	assert.True(t, second)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventSessionInvalidated, "7", InvalidationPayload{Reason: ReasonTokenExpired})

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, "7", e.UserID)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	unsubscribe := d.Subscribe(EventLoggedIn, func(context.Context, Event) error { calls++; return nil })

	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoggedIn, "1", nil)))
	unsubscribe()
	unsubscribe()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoggedIn, "1", nil)))
	assert.Equal(t, 1, calls)
}

func TestDispatcher_PanickingHandlerIsReported(t *testing.T) {
	d := NewInMemoryDispatcher()
	var after bool
	d.Subscribe(EventRegistered, func(context.Context, Event) error { panic("bad handler") })
	d.Subscribe(EventRegistered, func(context.Context, Event) error { after = true; return nil })

	err := d.Publish(context.Background(), NewEvent(EventRegistered, "1", nil))
	assert.ErrorContains(t, err, "bad handler")
	assert.True(t, after)
}
