package handler

import (
	"errors"
	"net/http"
	"time"

	"wedplan/internal/budget"
	"wedplan/internal/middleware"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo   repository.TaskRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
	vendorRepo repository.VendorRepositoryInterface
	aggregator budget.Recalculator
}

func NewTaskHandler(
	taskRepo repository.TaskRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	vendorRepo repository.VendorRepositoryInterface,
	aggregator budget.Recalculator,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:   taskRepo,
		boardRepo:  boardRepo,
		vendorRepo: vendorRepo,
		aggregator: aggregator,
	}
}

type CreateTaskRequest struct {
	BoardID     string     `json:"board_id" binding:"required,uuid"`
	VendorID    string     `json:"vendor_id" binding:"required,uuid"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Position    int        `json:"position"`
}

type UpdateTaskRequest struct {
	VendorID    *string    `json:"vendor_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Color       *string    `json:"color"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Position    *int       `json:"position"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"board_id"`
	BoardName   string     `json:"board_name,omitempty"`
	VendorID    *string    `json:"vendor_id,omitempty"`
	VendorName  string     `json:"vendor_name,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Category    string     `json:"category,omitempty"`
	Cost        *float64   `json:"cost,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Checklist []ChecklistItemResponse `json:"checklist"`
	Comments  []CommentResponse       `json:"comments"`
}

func taskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		BoardID:     task.BoardID.String(),
		Title:       task.Title,
		Description: task.Description,
		Color:       task.Color,
		Category:    task.Category,
		Cost:        task.Cost,
		DueDate:     task.DueDate,
		Status:      task.Status,
		Priority:    task.Priority,
		Position:    task.Position,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Checklist:   make([]ChecklistItemResponse, 0, len(task.Checklist)),
		Comments:    make([]CommentResponse, 0, len(task.Comments)),
	}
	if task.VendorID != nil {
		id := task.VendorID.String()
		resp.VendorID = &id
	}
	if task.Vendor != nil {
		resp.VendorName = task.Vendor.Name
	}
	if task.Board.Name != "" {
		resp.BoardName = task.Board.Name
	}
	for _, item := range task.Checklist {
		resp.Checklist = append(resp.Checklist, checklistItemResponse(&item))
	}
	for _, comment := range task.Comments {
		resp.Comments = append(resp.Comments, commentResponse(&comment))
	}
	return resp
}

func validStatus(status string) bool {
	return status == model.StatusToDo || status == model.StatusInProgress || status == model.StatusDone
}

func validPriority(priority string) bool {
	return priority == model.PriorityLow || priority == model.PriorityMedium || priority == model.PriorityHigh
}

// Create requires the board and the vendor to exist and copies the vendor's
// category and cost onto the new task, then recomputes the board budget.
func (h *TaskHandler) Create(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, _ := uuid.Parse(req.BoardID)
	vendorID, _ := uuid.Parse(req.VendorID)

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	vendor, err := h.vendorRepo.GetByID(c.Request.Context(), vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendor"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !validStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !validPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	cost := vendor.Cost
	task := &model.Task{
		ID:          uuid.New(),
		BoardID:     boardID,
		VendorID:    &vendor.ID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Category:    vendor.Category,
		Cost:        &cost,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
		Position:    req.Position,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if err := h.aggregator.Recalculate(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute board budget"})
		return
	}

	task.Vendor = vendor
	task.Board = *board
	c.JSON(http.StatusCreated, taskResponse(task))
}

// GetByBoardID lists a board's tasks. An empty board answers 404.
func (h *TaskHandler) GetByBoardID(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	tasks, err := h.taskRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tasks found"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// Update re-resolves the vendor when one is supplied, overwriting the
// task's category and cost from it, applies the remaining partial updates,
// then recomputes the board budget.
func (h *TaskHandler) Update(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.VendorID != nil {
		vendorID, err := uuid.Parse(*req.VendorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID format"})
			return
		}
		vendor, err := h.vendorRepo.GetByID(c.Request.Context(), vendorID)
		if err != nil {
			if errors.Is(err, repository.ErrVendorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendor"})
			return
		}
		cost := vendor.Cost
		task.VendorID = &vendor.ID
		task.Category = vendor.Category
		task.Cost = &cost
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Color != nil {
		task.Color = *req.Color
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Status != "" {
		if !validStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		task.Status = req.Status
	}
	if req.Priority != "" {
		if !validPriority(req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		task.Priority = req.Priority
	}
	if req.Position != nil {
		task.Position = *req.Position
	}
	task.UpdatedAt = time.Now()

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := h.aggregator.Recalculate(c.Request.Context(), task.BoardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute board budget"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete removes the task and recomputes the budget of its former board.
func (h *TaskHandler) Delete(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if err := h.aggregator.Recalculate(c.Request.Context(), task.BoardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute board budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
