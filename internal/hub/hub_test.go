package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesAllUserStreams(t *testing.T) {
	h := NewHub()

	first := make(Client, 1)
	second := make(Client, 1)
	other := make(Client, 1)
	h.Subscribe(1, first)
	h.Subscribe(1, second)
	h.Subscribe(2, other)

	h.Broadcast(1, Event{Type: "test", Payload: "hello"})

	for _, client := range []Client{first, second} {
		select {
		case msg := <-client:
			var event Event
			require.NoError(t, json.Unmarshal(msg, &event))
			assert.Equal(t, "test", event.Type)
		default:
			t.Fatal("expected a message on the client channel")
		}
	}

	select {
	case <-other:
		t.Fatal("user 2 must not receive user 1 events")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()

	client := make(Client, 1)
	h.Subscribe(1, client)
	h.Unsubscribe(1, client)

	_, open := <-client
	assert.False(t, open)

	// Broadcasting to a user with no streams is a no-op.
	h.Broadcast(1, Event{Type: "test"})

	// Unsubscribing twice must not panic or double-close.
	h.Unsubscribe(1, client)
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	h := NewHub()

	// Unbuffered channel with no reader: the send must be dropped.
	client := make(Client)
	h.Subscribe(1, client)
	h.Broadcast(1, Event{Type: "test"})
}

func TestPublishUnread(t *testing.T) {
	h := NewHub()

	client := make(Client, 1)
	h.Subscribe(7, client)
	h.PublishUnread(7, 3)

	msg := <-client
	var event Event
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "notification", event.Type)

	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, payload["unread_count"])
}
