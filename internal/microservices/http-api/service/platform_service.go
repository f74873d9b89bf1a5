package service

import (
	"context"
	"errors"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type PlatformPage struct {
	Platforms []models.StreamPlatform
	Total     int64
	Page      int
	PageSize  int
}

type PlatformService interface {
	List(ctx context.Context, page int) (*PlatformPage, error)
	GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error)
	Create(ctx context.Context, in dto.PlatformRequest) (*models.StreamPlatform, error)
	Update(ctx context.Context, id int64, in dto.PlatformRequest) (*models.StreamPlatform, error)
	Delete(ctx context.Context, id int64) error
}

type platformService struct {
	repo     repository.PlatformRepository
	pageSize int
}

func NewPlatformService(repo repository.PlatformRepository, pageSize int) PlatformService {
	return &platformService{repo: repo, pageSize: pageSize}
}

func (s *platformService) List(ctx context.Context, page int) (*PlatformPage, error) {
	if page < 1 {
		page = 1
	}
	list, total, err := s.repo.List(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	if page > dto.TotalPages(total, s.pageSize) {
		return nil, ErrInvalidPage
	}
	return &PlatformPage{Platforms: list, Total: total, Page: page, PageSize: s.pageSize}, nil
}

func (s *platformService) GetByID(ctx context.Context, id int64) (*models.StreamPlatform, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlatformNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *platformService) Create(ctx context.Context, in dto.PlatformRequest) (*models.StreamPlatform, error) {
	var p models.StreamPlatform
	in.ApplyTo(&p)
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *platformService) Update(ctx context.Context, id int64, in dto.PlatformRequest) (*models.StreamPlatform, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *platformService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlatformNotFound
	}
	return nil
}
