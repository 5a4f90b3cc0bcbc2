package handler_test

import (
	"encoding/json"
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

func setupChecklistTest(callerID uuid.UUID) (*gin.Engine, *MockChecklistRepository, *MockTaskRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	checklistRepo := new(MockChecklistRepository)
	taskRepo := new(MockTaskRepository)
	checklistHandler := handler.NewChecklistHandler(checklistRepo, taskRepo)

	r.Use(authAs(callerID))
	r.POST("/checklist/:taskId", checklistHandler.Add)
	r.PATCH("/checklist/:taskId/:itemId/toggle", checklistHandler.Toggle)
	r.DELETE("/checklist/:taskId/:itemId", checklistHandler.Delete)

	return r, checklistRepo, taskRepo
}

func TestChecklistAdd_UnknownTask(t *testing.T) {
	router, checklistRepo, taskRepo := setupChecklistTest(uuid.New())

	taskID := uuid.New()
	taskRepo.On("GetByID", mock.Anything, taskID).Return(nil, repository.ErrTaskNotFound)

	resp := doJSON(router, "POST", "/checklist/"+taskID.String(), handler.ChecklistItemRequest{
		Text: "Confirm headcount",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Task not found", errorMessage(t, resp))
	checklistRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChecklistToggle_FlipsCompletion(t *testing.T) {
	router, checklistRepo, taskRepo := setupChecklistTest(uuid.New())

	task := &model.Task{ID: uuid.New(), BoardID: uuid.New()}
	item := &model.ChecklistItem{ID: uuid.New(), TaskID: task.ID, Text: "Confirm headcount", IsCompleted: false}

	taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	checklistRepo.On("GetByID", mock.Anything, task.ID, item.ID).Return(item, nil)
	checklistRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *model.ChecklistItem) bool {
		return updated.IsCompleted
	})).Return(nil)

	resp := doJSON(router, "PATCH", "/checklist/"+task.ID.String()+"/"+item.ID.String()+"/toggle", nil)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.ChecklistItemResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.IsCompleted)

	checklistRepo.AssertExpectations(t)
}

func TestChecklistDelete_UnknownItem(t *testing.T) {
	router, checklistRepo, taskRepo := setupChecklistTest(uuid.New())

	task := &model.Task{ID: uuid.New()}
	itemID := uuid.New()
	taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	checklistRepo.On("Delete", mock.Anything, task.ID, itemID).Return(repository.ErrChecklistNotFound)

	resp := doJSON(router, "DELETE", "/checklist/"+task.ID.String()+"/"+itemID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Checklist item not found", errorMessage(t, resp))
}
