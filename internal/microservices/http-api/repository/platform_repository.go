package repository

import (
	"context"
	"fmt"

	"watchmate/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PlatformRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.StreamPlatform, int64, error)
	GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, p *models.StreamPlatform) error
	Update(ctx context.Context, p *models.StreamPlatform) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type platformRepository struct {
	db *gorm.DB
}

func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &platformRepository{db: db}
}

func (r *platformRepository) List(ctx context.Context, limit, offset int) ([]models.StreamPlatform, int64, error) {
	var list []models.StreamPlatform
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.StreamPlatform{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count platforms: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Preload("WatchList", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list platforms: %w", err)
	}
	return list, total, nil
}

func (r *platformRepository) GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error) {
	var p models.StreamPlatform
	if err := r.db.WithContext(ctx).
		Preload("WatchList", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *platformRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StreamPlatform{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check platform: %w", err)
	}
	return count > 0, nil
}

func (r *platformRepository) Create(ctx context.Context, p *models.StreamPlatform) error {
	if err := r.db.WithContext(ctx).Omit("WatchList").Create(p).Error; err != nil {
		return fmt.Errorf("create platform: %w", err)
	}
	return nil
}

func (r *platformRepository) Update(ctx context.Context, p *models.StreamPlatform) error {
	if err := r.db.WithContext(ctx).Model(p).Select("name", "about", "website").Updates(p).Error; err != nil {
		return fmt.Errorf("update platform: %w", err)
	}
	return nil
}

func (r *platformRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.StreamPlatform{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete platform: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
