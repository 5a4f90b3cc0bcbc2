package handler

import (
	"net/http"
	"time"

	"wedplan/internal/chat"
	"wedplan/internal/middleware"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageRepo repository.MessageRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	hub         chat.Broadcaster
}

func NewMessageHandler(
	messageRepo repository.MessageRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	hub chat.Broadcaster,
) *MessageHandler {
	return &MessageHandler{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		hub:         hub,
	}
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func messageResponse(msg *model.Message) MessageResponse {
	return MessageResponse{
		ID:         msg.ID.String(),
		SenderID:   msg.SenderID.String(),
		SenderName: msg.Sender.Name,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}
}

// GetAll returns the full chat history, oldest first.
func (h *MessageHandler) GetAll(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	messages, err := h.messageRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	response := make([]MessageResponse, len(messages))
	for i := range messages {
		response[i] = messageResponse(&messages[i])
	}
	c.JSON(http.StatusOK, response)
}

// Post persists a message, then mirrors it to every connected chat client.
func (h *MessageHandler) Post(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sender, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sender"})
		return
	}
	if sender == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	msg := &model.Message{
		ID:       uuid.New(),
		SenderID: userID,
		Content:  req.Content,
	}

	if err := h.messageRepo.Create(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	h.hub.Broadcast(chat.OutgoingMessage{
		ID:         msg.ID.String(),
		SenderID:   userID.String(),
		SenderName: sender.Name,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	})

	msg.Sender = *sender
	c.JSON(http.StatusCreated, messageResponse(msg))
}
