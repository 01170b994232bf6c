package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*WebSocketManager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	manager := NewWebSocketManager()
	go manager.Run(ctx)

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set(contextkeys.UserIDKey, c.Query("user"))
		c.Next()
	}, NewWebSocketHandler(manager).ServeWS)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return manager, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?user="+userID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestManager_PublishReachesReceiver(t *testing.T) {
	manager, url := startHub(t)
	conn := dial(t, url, "receiver")

	require.Eventually(t, func() bool {
		return manager.IsClientConnected("receiver")
	}, 2*time.Second, 10*time.Millisecond)

	manager.PublishMessage("receiver", &models.Message{SenderID: "sender", ReceiverID: "receiver", Content: "hello"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var envelope struct {
		Type string         `json:"type"`
		Data models.Message `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&envelope))
	assert.Equal(t, "message", envelope.Type)
	assert.Equal(t, "hello", envelope.Data.Content)
	assert.Equal(t, "sender", envelope.Data.SenderID)
}

func TestManager_AllConnectionsOfUserReceive(t *testing.T) {
	manager, url := startHub(t)
	first := dial(t, url, "u1")
	second := dial(t, url, "u1")

	require.Eventually(t, func() bool {
		return manager.GetClientCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	manager.PublishMessage("u1", &models.Message{Content: "ping"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(payload), `"type":"message"`)
	}
}

func TestManager_DisconnectUnregisters(t *testing.T) {
	manager, url := startHub(t)
	conn := dial(t, url, "u1")

	require.Eventually(t, func() bool {
		return manager.IsClientConnected("u1")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return !manager.IsClientConnected("u1")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManager_PublishWithoutClientsDoesNotBlock(t *testing.T) {
	manager, _ := startHub(t)

	done := make(chan struct{})
	go func() {
		for i := 0; i < outboundBuffer*2; i++ {
			manager.PublishMessage("nobody", &models.Message{Content: "lost"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishMessage blocked")
	}
	assert.Equal(t, 0, manager.GetClientCount())
}
