package models

import "time"

// WatchList is a watchable title. AvgRating and NumberRating are owned by the
// review ledger and only change when a review is submitted.
type WatchList struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string    `json:"title" gorm:"size:50;not null"`
	Storyline    string    `json:"storyline" gorm:"size:200;not null"`
	PlatformID   int64     `json:"platform_id" gorm:"not null;index"`
	Active       bool      `json:"active" gorm:"not null"`
	AvgRating    float64   `json:"avg_rating" gorm:"not null;default:0"`
	NumberRating int       `json:"number_rating" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created" gorm:"autoCreateTime"`

	// associations
	Platform *StreamPlatform `json:"-" gorm:"foreignKey:PlatformID"`
	Reviews  []Review        `json:"-" gorm:"foreignKey:WatchListID;constraint:OnDelete:CASCADE;"`
}

func (WatchList) TableName() string {
	return "watchlists"
}
