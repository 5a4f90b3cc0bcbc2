package handler

import (
	"net/http"
	"time"

	"wedplan/internal/middleware"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface, userRepo repository.UserRepositoryInterface) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

type CreateBoardRequest struct {
	Name        string     `json:"name" binding:"required"`
	Members     []string   `json:"members"`
	TotalBudget float64    `json:"totalBudget"`
	WeddingDate *time.Time `json:"weddingDate"`
}

type UpdateBoardRequest struct {
	Name        string     `json:"name"`
	TotalBudget *float64   `json:"totalBudget"`
	WeddingDate *time.Time `json:"weddingDate"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type BoardResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	OwnerID        string           `json:"owner_id"`
	Members        []BoardMemberRef `json:"members"`
	TotalBudget    float64          `json:"total_budget"`
	TotalSpent     float64          `json:"total_spent"`
	TotalRemaining float64          `json:"total_remaining"`
	WeddingDate    *time.Time       `json:"wedding_date,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type BoardMemberRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func boardResponse(board *model.Board) BoardResponse {
	members := make([]BoardMemberRef, len(board.Members))
	for i, m := range board.Members {
		members[i] = BoardMemberRef{ID: m.ID.String(), Name: m.Name, Email: m.Email}
	}
	return BoardResponse{
		ID:             board.ID.String(),
		Name:           board.Name,
		OwnerID:        board.OwnerID.String(),
		Members:        members,
		TotalBudget:    board.TotalBudget,
		TotalSpent:     board.TotalSpent,
		TotalRemaining: board.TotalRemaining,
		WeddingDate:    board.WeddingDate,
		CreatedAt:      board.CreatedAt,
	}
}

// canView reports whether the user owns the board or is a member.
func canView(board *model.Board, userID uuid.UUID) bool {
	if board.OwnerID == userID {
		return true
	}
	for _, m := range board.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Create creates a board owned by the caller. Every member id must resolve
// to an existing user. Spent and remaining both start at zero; the first
// aggregator run after a task exists corrects remaining.
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	members := make([]model.User, 0, len(req.Members))
	for _, idStr := range req.Members {
		memberID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
			return
		}
		member, err := h.userRepo.GetByID(c.Request.Context(), memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve member"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		members = append(members, *member)
	}

	board := &model.Board{
		ID:             uuid.New(),
		Name:           req.Name,
		OwnerID:        ownerID,
		Members:        members,
		TotalBudget:    req.TotalBudget,
		TotalSpent:     0,
		TotalRemaining: 0,
		WeddingDate:    req.WeddingDate,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetAll lists the caller's boards. An empty result answers 404.
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boards, err := h.boardRepo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	if len(boards) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No boards found"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if !canView(board, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Update partially edits name, budget and wedding date. It deliberately
// leaves total_remaining untouched when the budget changes; only the
// aggregator rewrites derived totals.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if !canView(board, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this board"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		board.Name = req.Name
	}
	if req.TotalBudget != nil {
		board.TotalBudget = *req.TotalBudget
	}
	if req.WeddingDate != nil {
		board.WeddingDate = req.WeddingDate
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Delete removes the board document only. Tasks and vendors scoped to it
// are not cascaded.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if board.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the board owner can delete the board"})
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}

// AddMember resolves a user by email and appends them to the member set.
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if !canView(board, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this board"})
		return
	}

	member, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User with this email not found"})
		return
	}

	for _, m := range board.Members {
		if m.ID == member.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this board"})
			return
		}
	}

	if err := h.boardRepo.AddMember(c.Request.Context(), boardID, member.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusOK, BoardMemberRef{ID: member.ID.String(), Name: member.Name, Email: member.Email})
}

// RemoveMember is owner-only. The owner cannot remove themselves and the
// target must currently be a member.
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if board.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the board owner can remove members"})
		return
	}

	if memberID == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "The board owner cannot remove themselves"})
		return
	}

	isMember := false
	for _, m := range board.Members {
		if m.ID == memberID {
			isMember = true
			break
		}
	}
	if !isMember {
		c.JSON(http.StatusNotFound, gin.H{"error": "User is not a member of this board"})
		return
	}

	if err := h.boardRepo.RemoveMember(c.Request.Context(), boardID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
