package service

import (
	"context"
	"time"

	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

// MockTokenRepository mocks the TokenRepository interface
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *models.Token) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepository) FindByUserID(ctx context.Context, userID string) (*models.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByKey(ctx context.Context, key string) (*models.Token, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) List(ctx context.Context, limit, offset int) ([]models.StreamPlatform, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.StreamPlatform), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlatformRepository) GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreamPlatform), args.Error(1)
}

func (m *MockPlatformRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatformRepository) Create(ctx context.Context, p *models.StreamPlatform) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlatformRepository) Update(ctx context.Context, p *models.StreamPlatform) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlatformRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockWatchListRepository struct {
	mock.Mock
}

func (m *MockWatchListRepository) List(ctx context.Context) ([]models.WatchList, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.WatchList), args.Error(1)
}

func (m *MockWatchListRepository) GetByID(ctx context.Context, id int64) (*models.WatchList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchList), args.Error(1)
}

func (m *MockWatchListRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.WatchList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchList), args.Error(1)
}

func (m *MockWatchListRepository) Create(ctx context.Context, w *models.WatchList) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWatchListRepository) Update(ctx context.Context, w *models.WatchList) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWatchListRepository) UpdateAggregate(ctx context.Context, id int64, avgRating float64, numberRating int) error {
	return m.Called(ctx, id, avgRating, numberRating).Error(0)
}

func (m *MockWatchListRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Exists(ctx context.Context, watchListID int64, userID string) (bool, error) {
	args := m.Called(ctx, watchListID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

// fakeLedgerTx hands the mocks to fn, standing in for a real transaction.
type fakeLedgerTx struct {
	watchLists repository.WatchListRepository
	reviews    repository.ReviewRepository
}

func (f fakeLedgerTx) RunInTx(_ context.Context, fn func(repository.WatchListRepository, repository.ReviewRepository) error) error {
	return fn(f.watchLists, f.reviews)
}
