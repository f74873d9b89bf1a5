package repository

import (
	"context"
	"fmt"

	"watchmate/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchListRepository interface {
	List(ctx context.Context) ([]models.WatchList, error)
	// GetByID loads the title with its platform and reviews.
	GetByID(ctx context.Context, id int64) (*models.WatchList, error)
	// GetByIDForUpdate row-locks the title until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.WatchList, error)
	Create(ctx context.Context, w *models.WatchList) error
	Update(ctx context.Context, w *models.WatchList) error
	UpdateAggregate(ctx context.Context, id int64, avgRating float64, numberRating int) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type watchListRepository struct {
	db *gorm.DB
}

func NewWatchListRepository(db *gorm.DB) WatchListRepository {
	return &watchListRepository{db: db}
}

func (r *watchListRepository) List(ctx context.Context) ([]models.WatchList, error) {
	var list []models.WatchList
	if err := r.db.WithContext(ctx).
		Preload("Platform").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Reviews.ReviewUser").
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return list, nil
}

func (r *watchListRepository) GetByID(ctx context.Context, id int64) (*models.WatchList, error) {
	var w models.WatchList
	if err := r.db.WithContext(ctx).
		Preload("Platform").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Reviews.ReviewUser").
		First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *watchListRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.WatchList, error) {
	var w models.WatchList
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *watchListRepository) Create(ctx context.Context, w *models.WatchList) error {
	if err := r.db.WithContext(ctx).Omit("Platform", "Reviews").Create(w).Error; err != nil {
		return fmt.Errorf("create watchlist: %w", err)
	}
	return nil
}

// Update writes the catalog fields only; the rating aggregate belongs to the ledger.
func (r *watchListRepository) Update(ctx context.Context, w *models.WatchList) error {
	if err := r.db.WithContext(ctx).Model(w).
		Select("title", "storyline", "platform_id", "active").
		Updates(w).Error; err != nil {
		return fmt.Errorf("update watchlist: %w", err)
	}
	return nil
}

func (r *watchListRepository) UpdateAggregate(ctx context.Context, id int64, avgRating float64, numberRating int) error {
	err := r.db.WithContext(ctx).Model(&models.WatchList{}).Where("id = ?", id).
		Updates(map[string]any{"avg_rating": avgRating, "number_rating": numberRating}).Error
	if err != nil {
		return fmt.Errorf("update watchlist aggregate: %w", err)
	}
	return nil
}

func (r *watchListRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.WatchList{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete watchlist: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
