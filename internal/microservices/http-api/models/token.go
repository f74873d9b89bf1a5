package models

import "time"

// Token is the opaque API credential of a user. A user holds at most one;
// deleting the row ends the session.
type Token struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Token) TableName() string {
	return "tokens"
}
