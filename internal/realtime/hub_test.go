package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-foto-event-back/internal/model"
)

func startHub() *Hub {
	hub := NewHub()
	go hub.Run()
	return hub
}

func drain(t *testing.T, c *Client, want int) []model.Message {
	t.Helper()
	var msgs []model.Message
	deadline := time.After(time.Second)
	for len(msgs) < want {
		select {
		case data := <-c.send:
			var msg model.Message
			require.NoError(t, json.Unmarshal(data, &msg))
			msgs = append(msgs, msg)
		case <-deadline:
			t.Fatalf("получено %d сообщений из %d", len(msgs), want)
		}
	}
	return msgs
}

func TestHubCountsViewersPerEvent(t *testing.T) {
	hub := startHub()

	a := NewClient(hub, nil, "wedding", "v1")
	b := NewClient(hub, nil, "wedding", "v2")
	other := NewClient(hub, nil, "birthday", "v3")
	a.Register()
	b.Register()
	other.Register()

	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 2 && hub.CountViewers("birthday") == 1
	}, time.Second, 5*time.Millisecond)

	hub.unregister <- b
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHubReplaysRosterToNewcomer(t *testing.T) {
	hub := startHub()

	a := NewClient(hub, nil, "wedding", "v1")
	a.Register()
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 1
	}, time.Second, 5*time.Millisecond)

	b := NewClient(hub, nil, "wedding", "v2")
	b.Register()

	// Новичок должен узнать про v1 (состав комнаты) и про себя (broadcast)
	msgs := drain(t, b, 2)
	var seen []string
	for _, m := range msgs {
		assert.Equal(t, model.MsgViewerJoined, m.Type)
		seen = append(seen, m.ViewerID)
	}
	assert.Contains(t, seen, "v1")
	assert.Contains(t, seen, "v2")
}

func TestHubBroadcastsOnlyToEventRoom(t *testing.T) {
	hub := startHub()

	a := NewClient(hub, nil, "wedding", "v1")
	other := NewClient(hub, nil, "birthday", "v2")
	a.Register()
	other.Register()
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 1 && hub.CountViewers("birthday") == 1
	}, time.Second, 5*time.Millisecond)

	// Сбрасываем приветственные сообщения
	drain(t, a, 1)
	drain(t, other, 1)

	hub.Broadcast(&model.Message{
		Type:      model.MsgImageDeleted,
		EventSlug: "wedding",
		ImageID:   "perm-1",
	})

	msgs := drain(t, a, 1)
	assert.Equal(t, model.MsgImageDeleted, msgs[0].Type)
	assert.Equal(t, "perm-1", msgs[0].ImageID)

	select {
	case data := <-other.send:
		t.Fatalf("чужая комната получила сообщение: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

// Подключение не зависит от очереди рассылки: даже при забитом
// буфере Run обязан обслужить регистрацию, не блокируясь на самом себе
func TestHubRegisterWithSaturatedQueue(t *testing.T) {
	hub := NewHub()
	for i := 0; i < cap(hub.broadcast); i++ {
		hub.Broadcast(&model.Message{Type: model.MsgImageDeleted, EventSlug: "empty-room"})
	}
	go hub.Run()

	a := NewClient(hub, nil, "wedding", "v1")
	a.Register()
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 1
	}, time.Second, 5*time.Millisecond)

	msgs := drain(t, a, 1)
	assert.Equal(t, model.MsgViewerJoined, msgs[0].Type)
}

func TestHubAnnouncesViewerLeft(t *testing.T) {
	hub := startHub()

	a := NewClient(hub, nil, "wedding", "v1")
	b := NewClient(hub, nil, "wedding", "v2")
	a.Register()
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 1
	}, time.Second, 5*time.Millisecond)
	b.Register()
	require.Eventually(t, func() bool {
		return hub.CountViewers("wedding") == 2
	}, time.Second, 5*time.Millisecond)

	// a видит свой join и join b
	drain(t, a, 2)

	hub.unregister <- b
	msgs := drain(t, a, 1)
	assert.Equal(t, model.MsgViewerLeft, msgs[0].Type)
	assert.Equal(t, "v2", msgs[0].ViewerID)
}
