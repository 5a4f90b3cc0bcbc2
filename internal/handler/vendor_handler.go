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

type VendorHandler struct {
	vendorRepo repository.VendorRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
	taskRepo   repository.TaskRepositoryInterface
	aggregator budget.Recalculator
}

func NewVendorHandler(
	vendorRepo repository.VendorRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
	aggregator budget.Recalculator,
) *VendorHandler {
	return &VendorHandler{
		vendorRepo: vendorRepo,
		boardRepo:  boardRepo,
		taskRepo:   taskRepo,
		aggregator: aggregator,
	}
}

type CreateVendorRequest struct {
	BoardID  string  `json:"board_id" binding:"required,uuid"`
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Cost     float64 `json:"cost"`
}

type UpdateVendorRequest struct {
	Name     string   `json:"name"`
	Category *string  `json:"category"`
	Address  *string  `json:"address"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	Cost     *float64 `json:"cost"`
}

type VendorResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

func vendorResponse(vendor *model.Vendor) VendorResponse {
	return VendorResponse{
		ID:        vendor.ID.String(),
		BoardID:   vendor.BoardID.String(),
		Name:      vendor.Name,
		Category:  vendor.Category,
		Address:   vendor.Address,
		Phone:     vendor.Phone,
		Email:     vendor.Email,
		Cost:      vendor.Cost,
		CreatedAt: vendor.CreatedAt,
	}
}

// Create stores a vendor scoped to an existing board.
func (h *VendorHandler) Create(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, _ := uuid.Parse(req.BoardID)
	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	vendor := &model.Vendor{
		ID:       uuid.New(),
		BoardID:  boardID,
		Name:     req.Name,
		Category: req.Category,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Cost:     req.Cost,
	}

	if err := h.vendorRepo.Create(c.Request.Context(), vendor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		return
	}

	c.JSON(http.StatusCreated, vendorResponse(vendor))
}

func (h *VendorHandler) GetByBoardID(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	vendors, err := h.vendorRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendors"})
		return
	}

	response := make([]VendorResponse, len(vendors))
	for i := range vendors {
		response[i] = vendorResponse(&vendors[i])
	}
	c.JSON(http.StatusOK, response)
}

// Update edits the vendor. When cost or category changed, the new values
// are pushed onto every task still referencing the vendor. The board budget
// is recomputed only if at least one task was touched; an update to an
// unreferenced vendor cannot move the totals.
func (h *VendorHandler) Update(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
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

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	costChanged := req.Cost != nil && *req.Cost != vendor.Cost
	categoryChanged := req.Category != nil && *req.Category != vendor.Category

	if req.Name != "" {
		vendor.Name = req.Name
	}
	if req.Category != nil {
		vendor.Category = *req.Category
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Cost != nil {
		vendor.Cost = *req.Cost
	}

	if err := h.vendorRepo.Update(c.Request.Context(), vendor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		return
	}

	if costChanged || categoryChanged {
		affected, err := h.taskRepo.PropagateVendor(c.Request.Context(), vendor.ID, vendor.Category, vendor.Cost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update referencing tasks"})
			return
		}
		if affected > 0 {
			if err := h.aggregator.Recalculate(c.Request.Context(), vendor.BoardID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute board budget"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, vendorResponse(vendor))
}

// Delete unlinks the vendor from every referencing task (the tasks stay,
// their vendor/category/cost fields are cleared), recomputes the budget if
// anything was unlinked, then removes the vendor itself.
func (h *VendorHandler) Delete(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
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

	affected, err := h.taskRepo.UnlinkVendor(c.Request.Context(), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlink tasks"})
		return
	}

	if affected > 0 {
		if err := h.aggregator.Recalculate(c.Request.Context(), vendor.BoardID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute board budget"})
			return
		}
	}

	if err := h.vendorRepo.Delete(c.Request.Context(), vendorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor deleted"})
}
