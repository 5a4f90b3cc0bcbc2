package handler_test

import (
	"net/http"
	"testing"

	"wedplan/internal/handler"
	"wedplan/internal/model"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type vendorTestEnv struct {
	router     *gin.Engine
	vendorRepo *MockVendorRepository
	boardRepo  *MockBoardRepository
	taskRepo   *MockTaskRepository
	aggregator *MockAggregator
}

func setupVendorTest(callerID uuid.UUID) vendorTestEnv {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	env := vendorTestEnv{
		router:     r,
		vendorRepo: new(MockVendorRepository),
		boardRepo:  new(MockBoardRepository),
		taskRepo:   new(MockTaskRepository),
		aggregator: new(MockAggregator),
	}
	vendorHandler := handler.NewVendorHandler(env.vendorRepo, env.boardRepo, env.taskRepo, env.aggregator)

	r.Use(authAs(callerID))
	r.POST("/vendor", vendorHandler.Create)
	r.GET("/vendor/board/:boardId", vendorHandler.GetByBoardID)
	r.PUT("/vendor/:id", vendorHandler.Update)
	r.DELETE("/vendor/:id", vendorHandler.Delete)

	return env
}

func TestVendorCreate_UnknownBoard(t *testing.T) {
	env := setupVendorTest(uuid.New())

	boardID := uuid.New()
	env.boardRepo.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	resp := doJSON(env.router, "POST", "/vendor", handler.CreateVendorRequest{
		BoardID: boardID.String(),
		Name:    "Caterer",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Board not found", errorMessage(t, resp))
	env.vendorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVendorUpdate_CostChangePropagatesAndRecalculates(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendor := &model.Vendor{
		ID:       uuid.New(),
		BoardID:  uuid.New(),
		Name:     "Caterer",
		Category: "Catering",
		Cost:     3000,
	}
	env.vendorRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	env.vendorRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	env.taskRepo.On("PropagateVendor", mock.Anything, vendor.ID, "Catering", float64(3500)).Return(int64(2), nil)
	env.aggregator.On("Recalculate", mock.Anything, vendor.BoardID).Return(nil)

	newCost := float64(3500)
	resp := doJSON(env.router, "PUT", "/vendor/"+vendor.ID.String(), handler.UpdateVendorRequest{
		Cost: &newCost,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	env.taskRepo.AssertExpectations(t)
	env.aggregator.AssertExpectations(t)
}

func TestVendorUpdate_NoReferencingTasksSkipsRecalculate(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendor := &model.Vendor{
		ID:      uuid.New(),
		BoardID: uuid.New(),
		Name:    "Photographer",
		Cost:    1500,
	}
	env.vendorRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	env.vendorRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	env.taskRepo.On("PropagateVendor", mock.Anything, vendor.ID, "", float64(2000)).Return(int64(0), nil)

	newCost := float64(2000)
	resp := doJSON(env.router, "PUT", "/vendor/"+vendor.ID.String(), handler.UpdateVendorRequest{
		Cost: &newCost,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	env.aggregator.AssertNotCalled(t, "Recalculate", mock.Anything, mock.Anything)
}

func TestVendorUpdate_NameOnlyChangeDoesNotPropagate(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendor := &model.Vendor{
		ID:      uuid.New(),
		BoardID: uuid.New(),
		Name:    "Photographer",
		Cost:    1500,
	}
	env.vendorRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	env.vendorRepo.On("Update", mock.Anything, mock.MatchedBy(func(v *model.Vendor) bool {
		return v.Name == "Studio Photographer" && v.Cost == 1500
	})).Return(nil)

	resp := doJSON(env.router, "PUT", "/vendor/"+vendor.ID.String(), handler.UpdateVendorRequest{
		Name: "Studio Photographer",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	env.taskRepo.AssertNotCalled(t, "PropagateVendor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	env.aggregator.AssertNotCalled(t, "Recalculate", mock.Anything, mock.Anything)
}

func TestVendorDelete_UnlinksTasksThenRecalculates(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendor := &model.Vendor{ID: uuid.New(), BoardID: uuid.New(), Name: "Florist"}
	env.vendorRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	env.taskRepo.On("UnlinkVendor", mock.Anything, vendor.ID).Return(int64(3), nil)
	env.aggregator.On("Recalculate", mock.Anything, vendor.BoardID).Return(nil)
	env.vendorRepo.On("Delete", mock.Anything, vendor.ID).Return(nil)

	resp := doJSON(env.router, "DELETE", "/vendor/"+vendor.ID.String(), nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	env.taskRepo.AssertExpectations(t)
	env.aggregator.AssertExpectations(t)
	env.vendorRepo.AssertExpectations(t)
}

func TestVendorDelete_NoReferencingTasksSkipsRecalculate(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendor := &model.Vendor{ID: uuid.New(), BoardID: uuid.New(), Name: "Florist"}
	env.vendorRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	env.taskRepo.On("UnlinkVendor", mock.Anything, vendor.ID).Return(int64(0), nil)
	env.vendorRepo.On("Delete", mock.Anything, vendor.ID).Return(nil)

	resp := doJSON(env.router, "DELETE", "/vendor/"+vendor.ID.String(), nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	env.aggregator.AssertNotCalled(t, "Recalculate", mock.Anything, mock.Anything)
	env.vendorRepo.AssertExpectations(t)
}

func TestVendorDelete_UnknownVendor(t *testing.T) {
	env := setupVendorTest(uuid.New())

	vendorID := uuid.New()
	env.vendorRepo.On("GetByID", mock.Anything, vendorID).Return(nil, repository.ErrVendorNotFound)

	resp := doJSON(env.router, "DELETE", "/vendor/"+vendorID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Vendor not found", errorMessage(t, resp))
	env.taskRepo.AssertNotCalled(t, "UnlinkVendor", mock.Anything, mock.Anything)
}
