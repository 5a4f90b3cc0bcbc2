package handler_test

import (
	"context"

	"wedplan/internal/middleware"
	"wedplan/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// authAs injects the authenticated caller the way the auth middleware does.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, userID)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

func (m *MockBoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

func (m *MockBoardRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, boardID, userID)
	return args.Bool(0), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, boardID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) PropagateVendor(ctx context.Context, vendorID uuid.UUID, category string, cost float64) (int64, error) {
	args := m.Called(ctx, vendorID, category, cost)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) UnlinkVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	vendor := args.Get(0)
	if vendor == nil {
		return nil, args.Error(1)
	}
	return vendor.(*model.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Vendor, error) {
	args := m.Called(ctx, boardID)
	vendors := args.Get(0)
	if vendors == nil {
		return nil, args.Error(1)
	}
	return vendors.([]model.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) Create(ctx context.Context, item *model.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChecklistRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.ChecklistItem, error) {
	args := m.Called(ctx, taskID)
	items := args.Get(0)
	if items == nil {
		return nil, args.Error(1)
	}
	return items.([]model.ChecklistItem), args.Error(1)
}

func (m *MockChecklistRepository) GetByID(ctx context.Context, taskID, itemID uuid.UUID) (*model.ChecklistItem, error) {
	args := m.Called(ctx, taskID, itemID)
	item := args.Get(0)
	if item == nil {
		return nil, args.Error(1)
	}
	return item.(*model.ChecklistItem), args.Error(1)
}

func (m *MockChecklistRepository) Update(ctx context.Context, item *model.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChecklistRepository) Delete(ctx context.Context, taskID, itemID uuid.UUID) error {
	args := m.Called(ctx, taskID, itemID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	comments := args.Get(0)
	if comments == nil {
		return nil, args.Error(1)
	}
	return comments.([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, taskID, commentID uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, taskID, commentID)
	comment := args.Get(0)
	if comment == nil {
		return nil, args.Error(1)
	}
	return comment.(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, taskID, commentID uuid.UUID) error {
	args := m.Called(ctx, taskID, commentID)
	return args.Error(0)
}

type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) Create(ctx context.Context, guest *model.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *MockGuestRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Guest, error) {
	args := m.Called(ctx, userID)
	guests := args.Get(0)
	if guests == nil {
		return nil, args.Error(1)
	}
	return guests.([]model.Guest), args.Error(1)
}

func (m *MockGuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	args := m.Called(ctx, id)
	guest := args.Get(0)
	if guest == nil {
		return nil, args.Error(1)
	}
	return guest.(*model.Guest), args.Error(1)
}

func (m *MockGuestRepository) Update(ctx context.Context, guest *model.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *MockGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetAll(ctx context.Context) ([]model.Message, error) {
	args := m.Called(ctx)
	messages := args.Get(0)
	if messages == nil {
		return nil, args.Error(1)
	}
	return messages.([]model.Message), args.Error(1)
}

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Recalculate(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}
