package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchEntry logs that a user watched a movie; one entry per user+movie pair.
type WatchEntry struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_watch_entry_user_movie" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MovieID   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_watch_entry_user_movie" json:"movie_id"`
	Movie     *Movie    `gorm:"constraint:OnDelete:CASCADE;foreignKey:MovieID;references:ID" json:"movie,omitempty"`
	WatchedAt time.Time `gorm:"not null;default:now();column:watched_at" json:"watched_at"`
}

func (WatchEntry) TableName() string {
	return "watch_entry"
}
