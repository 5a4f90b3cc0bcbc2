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

type GuestHandler struct {
	repo repository.GuestRepositoryInterface
}

func NewGuestHandler(repo repository.GuestRepositoryInterface) *GuestHandler {
	return &GuestHandler{repo: repo}
}

type CreateGuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	RSVP  bool   `json:"rsvp"`
}

type UpdateGuestRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	RSVP  *bool   `json:"rsvp"`
}

type GuestResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	RSVP      bool      `json:"rsvp"`
	CreatedAt time.Time `json:"created_at"`
}

func guestResponse(guest *model.Guest) GuestResponse {
	return GuestResponse{
		ID:        guest.ID.String(),
		Name:      guest.Name,
		Phone:     guest.Phone,
		Email:     guest.Email,
		RSVP:      guest.RSVP,
		CreatedAt: guest.CreatedAt,
	}
}

// resolveOwned answers the guest only when it belongs to the caller; a
// guest of another user answers not-found, not forbidden.
func (h *GuestHandler) resolveOwned(c *gin.Context, userID uuid.UUID) (*model.Guest, bool) {
	guestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest ID format"})
		return nil, false
	}

	guest, err := h.repo.GetByID(c.Request.Context(), guestID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve guest"})
		return nil, false
	}

	if guest.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		return nil, false
	}
	return guest, true
}

func (h *GuestHandler) Create(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	guest := &model.Guest{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		RSVP:   req.RSVP,
	}

	if err := h.repo.Create(c.Request.Context(), guest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
		return
	}

	c.JSON(http.StatusCreated, guestResponse(guest))
}

func (h *GuestHandler) GetAll(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	guests, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve guests"})
		return
	}

	response := make([]GuestResponse, len(guests))
	for i := range guests {
		response[i] = guestResponse(&guests[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *GuestHandler) Update(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	guest, ok := h.resolveOwned(c, userID)
	if !ok {
		return
	}

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		guest.Name = req.Name
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.RSVP != nil {
		guest.RSVP = *req.RSVP
	}

	if err := h.repo.Update(c.Request.Context(), guest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guest"})
		return
	}

	c.JSON(http.StatusOK, guestResponse(guest))
}

func (h *GuestHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	guest, ok := h.resolveOwned(c, userID)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), guest.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete guest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted"})
}
