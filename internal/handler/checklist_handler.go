package handler

import (
	"errors"
	"net/http"

	"wedplan/internal/middleware"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChecklistHandler struct {
	checklistRepo repository.ChecklistRepositoryInterface
	taskRepo      repository.TaskRepositoryInterface
}

func NewChecklistHandler(
	checklistRepo repository.ChecklistRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
) *ChecklistHandler {
	return &ChecklistHandler{
		checklistRepo: checklistRepo,
		taskRepo:      taskRepo,
	}
}

type ChecklistItemRequest struct {
	Text string `json:"text" binding:"required"`
}

type ChecklistItemResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

func checklistItemResponse(item *model.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:          item.ID.String(),
		TaskID:      item.TaskID.String(),
		Text:        item.Text,
		IsCompleted: item.IsCompleted,
	}
}

// resolveTask answers the parent task or writes the error response.
func (h *ChecklistHandler) resolveTask(c *gin.Context) (*model.Task, bool) {
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

// Add appends an item to the task's checklist.
func (h *ChecklistHandler) Add(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item := &model.ChecklistItem{
		ID:     uuid.New(),
		TaskID: task.ID,
		Text:   req.Text,
	}

	if err := h.checklistRepo.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add checklist item"})
		return
	}

	c.JSON(http.StatusCreated, checklistItemResponse(item))
}

// GetAll lists the task's checklist items.
func (h *ChecklistHandler) GetAll(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	items, err := h.checklistRepo.GetByTaskID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist"})
		return
	}

	response := make([]ChecklistItemResponse, len(items))
	for i := range items {
		response[i] = checklistItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, response)
}

// Edit rewrites an item's text.
func (h *ChecklistHandler) Edit(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := h.checklistRepo.GetByID(c.Request.Context(), task.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist item"})
		return
	}

	item.Text = req.Text
	if err := h.checklistRepo.Update(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checklist item"})
		return
	}

	c.JSON(http.StatusOK, checklistItemResponse(item))
}

// Toggle flips an item's completion state.
func (h *ChecklistHandler) Toggle(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	item, err := h.checklistRepo.GetByID(c.Request.Context(), task.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist item"})
		return
	}

	item.IsCompleted = !item.IsCompleted
	if err := h.checklistRepo.Update(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checklist item"})
		return
	}

	c.JSON(http.StatusOK, checklistItemResponse(item))
}

// Delete removes an item from the task's checklist.
func (h *ChecklistHandler) Delete(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, ok := h.resolveTask(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	if err := h.checklistRepo.Delete(c.Request.Context(), task.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete checklist item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item deleted"})
}
