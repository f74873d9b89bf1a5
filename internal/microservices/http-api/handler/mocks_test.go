package handler

import (
	"context"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password, password2 string) (*models.User, *models.Token, error) {
	args := m.Called(ctx, username, email, password, password2)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.Token), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, *models.Token, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.Token), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPlatformService struct {
	mock.Mock
}

func (m *MockPlatformService) List(ctx context.Context, page int) (*service.PlatformPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlatformPage), args.Error(1)
}

func (m *MockPlatformService) GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreamPlatform), args.Error(1)
}

func (m *MockPlatformService) Create(ctx context.Context, in dto.PlatformRequest) (*models.StreamPlatform, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreamPlatform), args.Error(1)
}

func (m *MockPlatformService) Update(ctx context.Context, id int64, in dto.PlatformRequest) (*models.StreamPlatform, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreamPlatform), args.Error(1)
}

func (m *MockPlatformService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockWatchListService struct {
	mock.Mock
}

func (m *MockWatchListService) List(ctx context.Context) ([]models.WatchList, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.WatchList), args.Error(1)
}

func (m *MockWatchListService) GetByID(ctx context.Context, id int64) (*models.WatchList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchList), args.Error(1)
}

func (m *MockWatchListService) Create(ctx context.Context, in dto.WatchListRequest) (*models.WatchList, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchList), args.Error(1)
}

func (m *MockWatchListService) Update(ctx context.Context, id int64, in dto.WatchListRequest) (*models.WatchList, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchList), args.Error(1)
}

func (m *MockWatchListService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, watchListID int64, user *models.User, in dto.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, watchListID, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListForTitle(ctx context.Context, watchListID int64, q service.ReviewQuery) (*service.ReviewPage, error) {
	args := m.Called(ctx, watchListID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewPage), args.Error(1)
}

func (m *MockReviewService) ListForUser(ctx context.Context, username string, page int) (*service.ReviewPage, error) {
	args := m.Called(ctx, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewPage), args.Error(1)
}

func (m *MockReviewService) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id int64, user *models.User, in dto.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, id, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id int64, user *models.User) error {
	return m.Called(ctx, id, user).Error(0)
}
