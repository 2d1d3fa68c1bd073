package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchLater marks a movie the user intends to watch.
type WatchLater struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"not null;uniqueIndex:idx_watch_later_user_movie" json:"user_id"`
	User    *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MovieID string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_watch_later_user_movie" json:"movie_id"`
	Movie   *Movie    `gorm:"constraint:OnDelete:CASCADE;foreignKey:MovieID;references:ID" json:"movie,omitempty"`
	AddedAt time.Time `gorm:"not null;default:now();column:added_at" json:"added_at"`
}

func (WatchLater) TableName() string {
	return "watch_later"
}
