package models

type StreamPlatform struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"size:30;not null"`
	About   string `json:"about" gorm:"size:150;not null"`
	Website string `json:"website" gorm:"size:100;not null"`

	// association
	WatchList []WatchList `json:"watchlist,omitempty" gorm:"foreignKey:PlatformID;constraint:OnDelete:CASCADE;"`
}

func (StreamPlatform) TableName() string {
	return "stream_platforms"
}
