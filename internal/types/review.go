package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds one user's rating of one movie; the pair is unique.
type Review struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"not null;uniqueIndex:idx_review_user_movie" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	MovieID    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_review_user_movie" json:"movie_id"`
	Movie      *Movie    `gorm:"constraint:OnDelete:CASCADE;foreignKey:MovieID;references:ID" json:"movie,omitempty"`
	Rating     float64   `gorm:"not null;column:rating" json:"rating"`
	ReviewText string    `gorm:"type:text;column:review_text" json:"review_text"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Review) TableName() string {
	return "review"
}
