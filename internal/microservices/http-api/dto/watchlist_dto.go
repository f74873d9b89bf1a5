package dto

import (
	"time"

	"watchmate/internal/microservices/http-api/models"
)

// WatchListRequest used for POST /watch/ and PUT /watch/:id/.
// Rating aggregates are not accepted from clients.
type WatchListRequest struct {
	Title     string `json:"title" binding:"required,max=50"`
	Storyline string `json:"storyline" binding:"required,max=200"`
	Platform  int64  `json:"platform" binding:"required,gt=0"`
	Active    *bool  `json:"active,omitempty"`
}

type WatchListResponse struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Storyline    string           `json:"storyline"`
	Platform     string           `json:"platform"`
	PlatformID   int64            `json:"platform_id"`
	Active       bool             `json:"active"`
	AvgRating    float64          `json:"avg_rating"`
	NumberRating int              `json:"number_rating"`
	Created      time.Time        `json:"created"`
	Reviews      []ReviewResponse `json:"reviews"`
}

// ApplyTo copies the client-settable fields; Active defaults to true.
func (d WatchListRequest) ApplyTo(w *models.WatchList) {
	w.Title = d.Title
	w.Storyline = d.Storyline
	w.PlatformID = d.Platform
	w.Active = true
	if d.Active != nil {
		w.Active = *d.Active
	}
}

func FromModelToWatchListResponse(w models.WatchList) WatchListResponse {
	platform := ""
	if w.Platform != nil {
		platform = w.Platform.Name
	}
	reviews := make([]ReviewResponse, 0, len(w.Reviews))
	for _, r := range w.Reviews {
		reviews = append(reviews, FromModelToReviewResponse(r))
	}
	return WatchListResponse{
		ID:           w.ID,
		Title:        w.Title,
		Storyline:    w.Storyline,
		Platform:     platform,
		PlatformID:   w.PlatformID,
		Active:       w.Active,
		AvgRating:    w.AvgRating,
		NumberRating: w.NumberRating,
		Created:      w.CreatedAt,
		Reviews:      reviews,
	}
}
