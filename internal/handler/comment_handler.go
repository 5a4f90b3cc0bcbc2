package handler

import (
	"errors"
	"net/http"
	"time"

	"wedplan/internal/middleware"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentRepo repository.CommentRepositoryInterface
	taskRepo    repository.TaskRepositoryInterface
}

func NewCommentHandler(
	commentRepo repository.CommentRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func commentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		TaskID:    comment.TaskID.String(),
		UserID:    comment.UserID.String(),
		UserName:  comment.User.Name,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func (h *CommentHandler) resolveTask(c *gin.Context) (*model.Task, bool) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil, false
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}
	return task, true
}

// Add attaches a comment by the caller to the task.
func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := &model.Comment{
		ID:     uuid.New(),
		TaskID: task.ID,
		UserID: userID,
		Text:   req.Text,
	}

	if err := h.commentRepo.Create(c.Request.Context(), comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, commentResponse(comment))
}

// GetAll lists the task's comments, oldest first.
func (h *CommentHandler) GetAll(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	comments, err := h.commentRepo.GetByTaskID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]CommentResponse, len(comments))
	for i := range comments {
		response[i] = commentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Edit rewrites a comment's text and stamps its updated_at. Only the author
// may edit.
func (h *CommentHandler) Edit(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID format"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := h.commentRepo.GetByID(c.Request.Context(), task.ID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	comment.Text = req.Text
	comment.UpdatedAt = time.Now()
	if err := h.commentRepo.Update(c.Request.Context(), comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, commentResponse(comment))
}

// Delete removes a comment. Only the author may delete.
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID format"})
		return
	}

	comment, err := h.commentRepo.GetByID(c.Request.Context(), task.ID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := h.commentRepo.Delete(c.Request.Context(), task.ID, commentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
