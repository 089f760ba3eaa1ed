package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-foto-event-back/internal/gallery"
	"live-foto-event-back/internal/model"
)

func TestSubscriberFeedsReconciler(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(model.Message{
			Type:  model.MsgImageUploaded,
			Image: photo("perm-1"),
		}))
		require.NoError(t, conn.WriteJSON(model.Message{
			Type:     model.MsgViewerJoined,
			ViewerID: "v1",
		}))
		// Держим соединение, пока тест не закончит
		conn.ReadMessage()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	sub, err := Subscribe(ctx, url)
	require.NoError(t, err)
	go sub.Run(ctx)

	r := NewReconciler(gallery.NewStore(), NewPresence())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, sub.Messages())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return r.Store.Len() == 1 && r.Presence.Count() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("реконсилятор не остановился")
	}
	assert.Equal(t, 1, r.Store.Len())
}
