package chat

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

	"github.com/smart-defence/academy-console/internal/models"
)

var upgrader = websocket.Upgrader{}

// echoGateway upgrades connections, asserts the auth header, and echoes
// every message back with a server-side id.
func echoGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for {
			var msg models.ChatMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			msg.ID = "srv-1"
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClientSendReceive(t *testing.T) {
	srv := echoGateway(t)
	c := NewClient(wsURL(srv), "tok", nil)
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	require.NoError(t, c.Send(models.ChatMessage{From: "s1", Body: "Olá, professor"}))

	select {
	case msg := <-c.Messages():
		assert.Equal(t, "srv-1", msg.ID)
		assert.Equal(t, "Olá, professor", msg.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestClientSendBeforeConnect(t *testing.T) {
	c := NewClient("ws://127.0.0.1:0", "tok", nil)
	require.Error(t, c.Send(models.ChatMessage{Body: "x"}))
}

func TestClientCloseEndsMessageChannel(t *testing.T) {
	srv := echoGateway(t)
	c := NewClient(wsURL(srv), "tok", nil)
	require.NoError(t, c.Connect(context.Background()))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "closing twice is harmless")

	select {
	case _, open := <-c.Messages():
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("message channel did not close")
	}
}

func TestClientConnectFailure(t *testing.T) {
	c := NewClient("ws://127.0.0.1:1/chat", "tok", nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.Error(t, c.Connect(ctx))
}
