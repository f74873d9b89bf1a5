package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// ReviewQuery is the parsed form of the review list parameters.
type ReviewQuery struct {
	Rating   *int
	Username string
	Search   string
	Ordering string
	Page     int
}

type ReviewPage struct {
	Reviews  []models.Review
	Total    int64
	Page     int
	PageSize int
}

type ReviewService interface {
	// SubmitReview records the user's review of a title and folds the rating
	// into the title's aggregate.
	SubmitReview(ctx context.Context, watchListID int64, user *models.User, in dto.ReviewRequest) (*models.Review, error)
	ListForTitle(ctx context.Context, watchListID int64, q ReviewQuery) (*ReviewPage, error)
	ListForUser(ctx context.Context, username string, page int) (*ReviewPage, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	Update(ctx context.Context, id int64, user *models.User, in dto.ReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, id int64, user *models.User) error
}

type reviewService struct {
	tx       repository.LedgerTx
	repo     repository.ReviewRepository
	pageSize int
	logger   *slog.Logger
}

func NewReviewService(tx repository.LedgerTx, repo repository.ReviewRepository, pageSize int, logger *slog.Logger) ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewService{
		tx:       tx,
		repo:     repo,
		pageSize: pageSize,
		logger:   logger,
	}
}

// nextAggregate applies one rating to a title's aggregate.
//
// NOTE: after the first review this is a blend of the previous average and
// the new rating, not an arithmetic mean, so recent ratings weigh more. Kept
// as-is for compatibility with existing data; changing it needs product sign-off.
func nextAggregate(avgRating float64, numberRating, rating int) (float64, int) {
	if numberRating == 0 {
		return float64(rating), 1
	}
	return (avgRating + float64(rating)) / 2, numberRating + 1
}

func (s *reviewService) SubmitReview(ctx context.Context, watchListID int64, user *models.User, in dto.ReviewRequest) (*models.Review, error) {
	var created *models.Review

	err := s.tx.RunInTx(ctx, func(watchLists repository.WatchListRepository, reviews repository.ReviewRepository) error {
		w, err := watchLists.GetByIDForUpdate(ctx, watchListID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWatchListNotFound
			}
			return fmt.Errorf("lock watchlist: %w", err)
		}

		exists, err := reviews.Exists(ctx, watchListID, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyReviewed
		}

		avg, count := nextAggregate(w.AvgRating, w.NumberRating, in.Rating)
		if err := watchLists.UpdateAggregate(ctx, w.ID, avg, count); err != nil {
			return err
		}

		review := &models.Review{
			ReviewUserID: user.ID,
			WatchListID:  w.ID,
			Rating:       in.Rating,
			Description:  in.Description,
			Active:       in.IsActive(),
		}
		if err := reviews.Create(ctx, review); err != nil {
			// the unique index is the real guard against concurrent submissions
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrAlreadyReviewed
			}
			return err
		}
		created = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.ReviewUser = *user
	s.logger.Info("review submitted",
		"review_id", created.ID,
		"watchlist_id", watchListID,
		"user_id", user.ID,
		"rating", created.Rating,
	)
	return created, nil
}

func (s *reviewService) ListForTitle(ctx context.Context, watchListID int64, q ReviewQuery) (*ReviewPage, error) {
	filter := repository.ReviewFilter{
		WatchListID: &watchListID,
		Rating:      q.Rating,
		SearchTerms: strings.Fields(q.Search),
		Ordering:    ParseOrdering(q.Ordering),
	}
	if q.Username != "" {
		filter.Username = &q.Username
	}
	return s.page(ctx, filter, q.Page)
}

// ListForUser lists the reviews written by username; an empty username matches nothing.
func (s *reviewService) ListForUser(ctx context.Context, username string, page int) (*ReviewPage, error) {
	if username == "" {
		if page > 1 {
			return nil, ErrInvalidPage
		}
		return &ReviewPage{Reviews: []models.Review{}, Page: 1, PageSize: s.pageSize}, nil
	}
	return s.page(ctx, repository.ReviewFilter{Username: &username}, page)
}

func (s *reviewService) page(ctx context.Context, filter repository.ReviewFilter, page int) (*ReviewPage, error) {
	if page < 1 {
		page = 1
	}
	filter.Limit = s.pageSize
	filter.Offset = (page - 1) * s.pageSize

	reviews, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if page > dto.TotalPages(total, s.pageSize) {
		return nil, ErrInvalidPage
	}
	return &ReviewPage{Reviews: reviews, Total: total, Page: page, PageSize: s.pageSize}, nil
}

func (s *reviewService) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Update edits a review in place. The title's aggregate is left untouched.
func (s *reviewService) Update(ctx context.Context, id int64, user *models.User, in dto.ReviewRequest) (*models.Review, error) {
	review, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(review, user) {
		return nil, ErrPermissionDenied
	}

	review.Rating = in.Rating
	review.Description = in.Description
	review.Active = in.IsActive()
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. The title's aggregate is left untouched.
func (s *reviewService) Delete(ctx context.Context, id int64, user *models.User) error {
	review, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(review, user) {
		return ErrPermissionDenied
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReviewNotFound
	}
	return nil
}

func canModify(review *models.Review, user *models.User) bool {
	if user == nil {
		return false
	}
	return review.ReviewUserID == user.ID || user.IsAdmin()
}

// ParseOrdering turns "-created,rating" into order fields. Blank entries are
// skipped; unknown names are dropped later by the repository.
func ParseOrdering(raw string) []repository.OrderField {
	var fields []repository.OrderField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			fields = append(fields, repository.OrderField{Name: part[1:], Desc: true})
			continue
		}
		fields = append(fields, repository.OrderField{Name: part})
	}
	return fields
}
