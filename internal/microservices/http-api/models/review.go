package models

import "time"

// Review is one user's rating of one title; (WatchListID, ReviewUserID) is unique.
type Review struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewUserID string    `json:"review_user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_watchlist_user,priority:2"`
	WatchListID  int64     `json:"watchlist_id" gorm:"column:watchlist_id;not null;uniqueIndex:idx_reviews_watchlist_user,priority:1"`
	Rating       int       `json:"rating" gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Description  string    `json:"description" gorm:"size:200"`
	Active       bool      `json:"active" gorm:"not null"`
	CreatedAt    time.Time `json:"created" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"update" gorm:"autoUpdateTime"`

	// Associations
	ReviewUser User       `json:"-" gorm:"foreignKey:ReviewUserID;constraint:OnDelete:CASCADE;"`
	WatchList  *WatchList `json:"-" gorm:"foreignKey:WatchListID"`
}

func (Review) TableName() string {
	return "reviews"
}
