// Package chat is the live relay for the global chat: one connection set,
// persist-then-broadcast, at-most-once delivery in arrival order.
package chat

import (
	"log"
	"net/http"
	"sync"
	"time"

	"wedplan/internal/auth"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Envelope wraps every frame pushed to clients.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// OutgoingMessage is the wire form of a chat message.
type OutgoingMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Broadcaster is what the REST message handler depends on.
type Broadcaster interface {
	Broadcast(msg OutgoingMessage)
}

type incomingFrame struct {
	Content string `json:"content"`
}

type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]uuid.UUID

	messages  repository.MessageRepositoryInterface
	users     repository.UserRepositoryInterface
	jwtSecret string
	upgrader  websocket.Upgrader
}

var _ Broadcaster = (*Hub)(nil)

func NewHub(messages repository.MessageRepositoryInterface, users repository.UserRepositoryInterface, jwtSecret string) *Hub {
	return &Hub{
		conns:     make(map[*websocket.Conn]uuid.UUID),
		messages:  messages,
		users:     users,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request, validates the token query parameter the
// same way the cookie middleware does, then relays frames: each incoming
// message is persisted and fanned out to every connected client.
func (h *Hub) HandleWS(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	userIDStr, err := auth.ParseToken(tokenStr, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WS upgrade error: %v", err)
		return
	}

	h.register(conn, userID)
	defer func() {
		h.unregister(conn)
		conn.Close()
	}()

	for {
		var frame incomingFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("WS read error: %v", err)
			}
			break
		}
		if frame.Content == "" {
			continue
		}

		msg := &model.Message{
			ID:       uuid.New(),
			SenderID: userID,
			Content:  frame.Content,
		}
		if err := h.messages.Create(c.Request.Context(), msg); err != nil {
			log.Printf("WS persist error: %v", err)
			continue
		}

		h.Broadcast(OutgoingMessage{
			ID:         msg.ID.String(),
			SenderID:   userID.String(),
			SenderName: user.Name,
			Content:    msg.Content,
			CreatedAt:  msg.CreatedAt,
		})
	}
}

// Broadcast pushes the message to every connected client. A peer that
// fails the write is dropped; there is no retry or replay.
func (h *Hub) Broadcast(msg OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	envelope := Envelope{Type: "message", Data: msg}
	for conn := range h.conns {
		if err := conn.WriteJSON(envelope); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ConnCount reports the number of connected clients.
func (h *Hub) ConnCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) register(conn *websocket.Conn, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = userID
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}
