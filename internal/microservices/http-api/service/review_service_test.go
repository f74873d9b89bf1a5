package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewServiceWithMocks() (ReviewService, *MockWatchListRepository, *MockReviewRepository) {
	watchLists := new(MockWatchListRepository)
	reviews := new(MockReviewRepository)
	svc := NewReviewService(fakeLedgerTx{watchLists: watchLists, reviews: reviews}, reviews, 10, nil)
	return svc, watchLists, reviews
}

func TestNextAggregate(t *testing.T) {
	tests := []struct {
		name      string
		avg       float64
		count     int
		rating    int
		wantAvg   float64
		wantCount int
	}{
		{name: "first rating", avg: 0, count: 0, rating: 4, wantAvg: 4, wantCount: 1},
		{name: "second rating blends", avg: 4, count: 1, rating: 2, wantAvg: 3, wantCount: 2},
		{name: "third rating blends with previous average", avg: 3, count: 2, rating: 5, wantAvg: 4, wantCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := nextAggregate(tt.avg, tt.count, tt.rating)
			assert.InDelta(t, tt.wantAvg, avg, 1e-9)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestSubmitReview_UpdatesAggregate(t *testing.T) {
	svc, watchLists, reviews := newReviewServiceWithMocks()
	ctx := context.Background()
	alice := &models.User{ID: "u-alice", Username: "alice"}
	bob := &models.User{ID: "u-bob", Username: "bob"}

	title := &models.WatchList{ID: 1, Title: "Dune"}
	watchLists.On("GetByIDForUpdate", ctx, int64(1)).Return(title, nil).Once()
	reviews.On("Exists", ctx, int64(1), alice.ID).Return(false, nil)
	watchLists.On("UpdateAggregate", ctx, int64(1), 4.0, 1).Return(nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.SubmitReview(ctx, 1, alice, dto.ReviewRequest{Rating: 4, Description: "great"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, review.ReviewUserID)
	assert.Equal(t, "alice", review.ReviewUser.Username)
	assert.Equal(t, int64(1), review.WatchListID)
	assert.True(t, review.Active)

	rated := &models.WatchList{ID: 1, Title: "Dune", AvgRating: 4, NumberRating: 1}
	watchLists.On("GetByIDForUpdate", ctx, int64(1)).Return(rated, nil).Once()
	reviews.On("Exists", ctx, int64(1), bob.ID).Return(false, nil)
	watchLists.On("UpdateAggregate", ctx, int64(1), 3.0, 2).Return(nil)

	_, err = svc.SubmitReview(ctx, 1, bob, dto.ReviewRequest{Rating: 2})
	require.NoError(t, err)

	watchLists.AssertExpectations(t)
	reviews.AssertNumberOfCalls(t, "Create", 2)
}

func TestSubmitReview_AlreadyReviewed(t *testing.T) {
	svc, watchLists, reviews := newReviewServiceWithMocks()
	ctx := context.Background()
	alice := &models.User{ID: "u-alice"}

	watchLists.On("GetByIDForUpdate", ctx, int64(1)).
		Return(&models.WatchList{ID: 1, AvgRating: 4, NumberRating: 1}, nil)
	reviews.On("Exists", ctx, int64(1), alice.ID).Return(true, nil)

	_, err := svc.SubmitReview(ctx, 1, alice, dto.ReviewRequest{Rating: 5})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, "You have already reviewed this movie!", err.Error())
	watchLists.AssertNotCalled(t, "UpdateAggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitReview_ConcurrentDuplicateRollsBack(t *testing.T) {
	svc, watchLists, reviews := newReviewServiceWithMocks()
	ctx := context.Background()
	alice := &models.User{ID: "u-alice"}

	watchLists.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.WatchList{ID: 1}, nil)
	reviews.On("Exists", ctx, int64(1), alice.ID).Return(false, nil)
	watchLists.On("UpdateAggregate", ctx, int64(1), 3.0, 1).Return(nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).
		Return(fmt.Errorf("create review: %w", errors.Join(repository.ErrDuplicateKey, errors.New("23505"))))

	_, err := svc.SubmitReview(ctx, 1, alice, dto.ReviewRequest{Rating: 3})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSubmitReview_WatchListNotFound(t *testing.T) {
	svc, watchLists, reviews := newReviewServiceWithMocks()
	ctx := context.Background()

	watchLists.On("GetByIDForUpdate", ctx, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SubmitReview(ctx, 42, &models.User{ID: "u-alice"}, dto.ReviewRequest{Rating: 3})

	assert.ErrorIs(t, err, ErrWatchListNotFound)
	reviews.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_InactiveFlagKept(t *testing.T) {
	svc, watchLists, reviews := newReviewServiceWithMocks()
	ctx := context.Background()
	inactive := false

	watchLists.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.WatchList{ID: 1}, nil)
	reviews.On("Exists", ctx, int64(1), "u-alice").Return(false, nil)
	watchLists.On("UpdateAggregate", ctx, int64(1), 1.0, 1).Return(nil)
	reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool { return !r.Active })).Return(nil)

	review, err := svc.SubmitReview(ctx, 1, &models.User{ID: "u-alice"}, dto.ReviewRequest{Rating: 1, Active: &inactive})

	require.NoError(t, err)
	assert.False(t, review.Active)
}

func TestListForTitle_BuildsFilter(t *testing.T) {
	svc, _, reviews := newReviewServiceWithMocks()
	ctx := context.Background()
	rating := 5
	id := int64(3)
	username := "alice"

	want := repository.ReviewFilter{
		WatchListID: &id,
		Username:    &username,
		Rating:      &rating,
		SearchTerms: []string{"slow", "burn"},
		Ordering:    []repository.OrderField{{Name: "created", Desc: true}},
		Limit:       10,
		Offset:      10,
	}
	reviews.On("List", ctx, want).Return(make([]models.Review, 5), int64(15), nil)

	page, err := svc.ListForTitle(ctx, 3, ReviewQuery{
		Rating:   &rating,
		Username: "alice",
		Search:   " slow  burn ",
		Ordering: "-created",
		Page:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Reviews, 5)
}

func TestListForTitle_PageOutOfRange(t *testing.T) {
	svc, _, reviews := newReviewServiceWithMocks()
	ctx := context.Background()

	reviews.On("List", ctx, mock.Anything).Return([]models.Review{}, int64(3), nil)

	_, err := svc.ListForTitle(ctx, 1, ReviewQuery{Page: 2})

	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestListForUser_EmptyUsername(t *testing.T) {
	svc, _, reviews := newReviewServiceWithMocks()

	page, err := svc.ListForUser(context.Background(), "", 1)

	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
	assert.Equal(t, int64(0), page.Total)
	reviews.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	_, err = svc.ListForUser(context.Background(), "", 2)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestReviewUpdateAndDelete_Permissions(t *testing.T) {
	owner := &models.User{ID: "u-owner", Role: models.RoleUser}
	other := &models.User{ID: "u-other", Role: models.RoleUser}
	admin := &models.User{ID: "u-admin", Role: models.RoleAdmin}

	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{name: "owner", user: owner},
		{name: "admin", user: admin},
		{name: "someone else", user: other, wantErr: ErrPermissionDenied},
		{name: "anonymous", user: nil, wantErr: ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, watchLists, reviews := newReviewServiceWithMocks()
			ctx := context.Background()
			stored := &models.Review{ID: 9, ReviewUserID: owner.ID, WatchListID: 1, Rating: 2}
			reviews.On("GetByID", ctx, int64(9)).Return(stored, nil)
			reviews.On("Update", ctx, stored).Return(nil).Maybe()
			reviews.On("Delete", ctx, int64(9)).Return(true, nil).Maybe()

			updated, err := svc.Update(ctx, 9, tt.user, dto.ReviewRequest{Rating: 5, Description: "changed my mind"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 5, updated.Rating)
			}

			err = svc.Delete(ctx, 9, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			// editing or deleting never touches the title's aggregate
			watchLists.AssertNotCalled(t, "UpdateAggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReviewGetByID_NotFound(t *testing.T) {
	svc, _, reviews := newReviewServiceWithMocks()
	reviews.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		raw  string
		want []repository.OrderField
	}{
		{raw: "", want: nil},
		{raw: "rating", want: []repository.OrderField{{Name: "rating"}}},
		{raw: "-created, rating", want: []repository.OrderField{{Name: "created", Desc: true}, {Name: "rating"}}},
		{raw: ",-,id", want: []repository.OrderField{{Name: "id"}}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOrdering(tt.raw), tt.raw)
	}
}
