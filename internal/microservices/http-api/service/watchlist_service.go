package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type WatchListService interface {
	List(ctx context.Context) ([]models.WatchList, error)
	GetByID(ctx context.Context, id int64) (*models.WatchList, error)
	Create(ctx context.Context, in dto.WatchListRequest) (*models.WatchList, error)
	Update(ctx context.Context, id int64, in dto.WatchListRequest) (*models.WatchList, error)
	Delete(ctx context.Context, id int64) error
}

type watchListService struct {
	repo         repository.WatchListRepository
	platformRepo repository.PlatformRepository
}

func NewWatchListService(repo repository.WatchListRepository, platformRepo repository.PlatformRepository) WatchListService {
	return &watchListService{repo: repo, platformRepo: platformRepo}
}

func (s *watchListService) List(ctx context.Context) ([]models.WatchList, error) {
	return s.repo.List(ctx)
}

func (s *watchListService) GetByID(ctx context.Context, id int64) (*models.WatchList, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchListNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *watchListService) Create(ctx context.Context, in dto.WatchListRequest) (*models.WatchList, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	var w models.WatchList
	in.ApplyTo(&w)
	if err := s.repo.Create(ctx, &w); err != nil {
		return nil, err
	}
	// reload so the response carries the platform name
	return s.GetByID(ctx, w.ID)
}

func (s *watchListService) Update(ctx context.Context, id int64, in dto.WatchListRequest) (*models.WatchList, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	in.ApplyTo(w)
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *watchListService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWatchListNotFound
	}
	return nil
}

func (s *watchListService) validate(ctx context.Context, in dto.WatchListRequest) error {
	fieldErrs := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		fieldErrs.Add("title", "This field may not be blank.")
	}
	ok, err := s.platformRepo.Exists(ctx, in.Platform)
	if err != nil {
		return err
	}
	if !ok {
		fieldErrs.Add("platform", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.Platform))
	}
	return fieldErrs.errOrNil()
}
