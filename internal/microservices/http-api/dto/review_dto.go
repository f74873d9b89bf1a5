package dto

import (
	"time"

	"watchmate/internal/microservices/http-api/models"
)

// ReviewRequest for creating or updating a review. The title and the author
// are bound server-side.
type ReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description" binding:"max=200"`
	Active      *bool  `json:"active,omitempty"`
}

// ReviewListQuery holds the filter, search and ordering parameters of
// GET /watch/:id/reviews/.
type ReviewListQuery struct {
	Rating   *int   `form:"rating"`
	Username string `form:"review_user__username"`
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

type ReviewResponse struct {
	ID          int64     `json:"id"`
	ReviewUser  string    `json:"review_user"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Created     time.Time `json:"created"`
	Update      time.Time `json:"update"`
	WatchList   int64     `json:"watchlist"`
}

// IsActive resolves the optional flag, defaulting to true.
func (d ReviewRequest) IsActive() bool {
	if d.Active == nil {
		return true
	}
	return *d.Active
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO.
// ReviewUser must be preloaded for the author name to be filled in.
func FromModelToReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		ReviewUser:  r.ReviewUser.Username,
		Rating:      r.Rating,
		Description: r.Description,
		Active:      r.Active,
		Created:     r.CreatedAt,
		Update:      r.UpdatedAt,
		WatchList:   r.WatchListID,
	}
}
