package repository

import (
	"context"
	"fmt"
	"strings"

	"watchmate/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sortable review columns, keyed by their public ordering name.
var reviewOrderColumns = map[string]string{
	"created": "created_at",
	"rating":  "rating",
	"id":      "id",
}

// OrderField is one component of an ordering such as "-created".
type OrderField struct {
	Name string
	Desc bool
}

// ReviewFilter narrows a review listing. Zero values mean "no constraint".
type ReviewFilter struct {
	WatchListID *int64
	Username    *string
	Rating      *int
	// SearchTerms must all appear in the description, case-insensitively.
	SearchTerms []string
	Ordering    []OrderField
	Limit       int
	Offset      int
}

type ReviewRepository interface {
	Exists(ctx context.Context, watchListID int64, userID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Exists(ctx context.Context, watchListID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("watchlist_id = ? AND review_user_id = ?", watchListID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return count > 0, nil
}

// Create inserts the review; a clash on (watchlist_id, review_user_id) yields ErrDuplicateKey.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("ReviewUser", "WatchList").Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", translate(err))
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("ReviewUser").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Model(review).
		Select("rating", "description", "active").
		Updates(review).Error; err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete review: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]models.Review, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query := r.filtered(ctx, filter).Preload("ReviewUser")
	for _, col := range orderColumns(filter.Ordering) {
		query = query.Order(col)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) filtered(ctx context.Context, filter ReviewFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Review{})

	if filter.WatchListID != nil {
		db = db.Where("reviews.watchlist_id = ?", *filter.WatchListID)
	}
	if filter.Rating != nil {
		db = db.Where("reviews.rating = ?", *filter.Rating)
	}
	if filter.Username != nil {
		db = db.Joins("JOIN users ON users.id = reviews.review_user_id").
			Where("users.username = ?", *filter.Username)
	}
	for _, term := range filter.SearchTerms {
		db = db.Where("reviews.description ILIKE ?", "%"+escapeLike(term)+"%")
	}
	return db
}

// orderColumns resolves the requested ordering, dropping unknown fields and
// always ending on id so pages are stable.
func orderColumns(fields []OrderField) []clause.OrderByColumn {
	cols := make([]clause.OrderByColumn, 0, len(fields)+1)
	hasID := false
	for _, f := range fields {
		name, ok := reviewOrderColumns[f.Name]
		if !ok {
			continue
		}
		if name == "id" {
			hasID = true
		}
		cols = append(cols, clause.OrderByColumn{
			Column: clause.Column{Table: "reviews", Name: name},
			Desc:   f.Desc,
		})
	}
	if !hasID {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Table: "reviews", Name: "id"}})
	}
	return cols
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
