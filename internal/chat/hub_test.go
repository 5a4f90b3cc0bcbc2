package chat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wedplan/internal/auth"
	"wedplan/internal/chat"
	"wedplan/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test-secret"

type stubMessageRepo struct {
	mu      sync.Mutex
	created []*model.Message
}

func (s *stubMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, msg)
	return nil
}

func (s *stubMessageRepo) GetAll(ctx context.Context) ([]model.Message, error) {
	return nil, nil
}

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func setupChatServer(user *model.User) (*httptest.Server, *chat.Hub, *stubMessageRepo) {
	gin.SetMode(gin.TestMode)
	messages := &stubMessageRepo{}
	users := &stubUserRepo{user: user}
	hub := chat.NewHub(messages, users, testJWTSecret)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	return httptest.NewServer(r), hub, messages
}

func TestHandleWS_MissingTokenRejected(t *testing.T) {
	server, _, _ := setupChatServer(nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWS_GarbageTokenRejected(t *testing.T) {
	server, _, _ := setupChatServer(nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws?token=not-a-jwt")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWS_PersistsAndBroadcasts(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Alice"}
	server, hub, messages := setupChatServer(user)
	defer server.Close()

	token, err := auth.GenerateToken(user.ID.String(), testJWTSecret, 1)
	assert.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	err = conn.WriteJSON(map[string]string{"content": "Venue is booked!"})
	assert.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var envelope struct {
		Type string               `json:"type"`
		Data chat.OutgoingMessage `json:"data"`
	}
	err = conn.ReadJSON(&envelope)
	assert.NoError(t, err)
	assert.Equal(t, "message", envelope.Type)
	assert.Equal(t, "Venue is booked!", envelope.Data.Content)
	assert.Equal(t, "Alice", envelope.Data.SenderName)

	messages.mu.Lock()
	assert.Len(t, messages.created, 1)
	messages.mu.Unlock()

	assert.Equal(t, 1, hub.ConnCount())
}

func TestBroadcast_EmptyHubIsNoop(t *testing.T) {
	hub := chat.NewHub(&stubMessageRepo{}, &stubUserRepo{}, testJWTSecret)

	hub.Broadcast(chat.OutgoingMessage{Content: "nobody listening"})

	assert.Equal(t, 0, hub.ConnCount())
}
