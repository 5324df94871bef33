package server

import (
	"context"

	"creationity/internal/config"
	"creationity/internal/models"
	"creationity/internal/repository"
	"creationity/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

// MockContentRepository is a mock of the ContentRepository interface
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) List(ctx context.Context, filter repository.ContentFilter) ([]models.ContentItem, int64, error) {
	args := m.Called(ctx, filter)
	var items []models.ContentItem
	if args.Get(0) != nil {
		items = args.Get(0).([]models.ContentItem)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockContentRepository) ListByUser(ctx context.Context, userID uint, filter repository.ContentFilter) ([]models.ContentItem, int64, error) {
	args := m.Called(ctx, userID, filter)
	var items []models.ContentItem
	if args.Get(0) != nil {
		items = args.Get(0).([]models.ContentItem)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockContentRepository) ListLikedBy(ctx context.Context, userID uint, filter repository.ContentFilter) ([]models.ContentItem, int64, error) {
	args := m.Called(ctx, userID, filter)
	var items []models.ContentItem
	if args.Get(0) != nil {
		items = args.Get(0).([]models.ContentItem)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockContentRepository) Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error) {
	args := m.Called(ctx, contentType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) ToggleLike(ctx context.Context, userID, contentID uint) (bool, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newTestServer wires a Server around mock repositories.
func newTestServer(userRepo repository.UserRepository, contentRepo repository.ContentRepository) *Server {
	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret"},
		userRepo:    userRepo,
		contentRepo: contentRepo,
	}
	if userRepo != nil {
		s.userService = service.NewUserService(userRepo)
	}
	if contentRepo != nil {
		s.contentService = service.NewContentService(contentRepo)
	}
	return s
}
