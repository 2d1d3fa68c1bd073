package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one chat message between two users.
type Message struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FromUserID uuid.UUID `gorm:"index;not null" json:"from_user_id"`
	FromUser   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:FromUserID;references:ID" json:"-"`
	ToUserID   uuid.UUID `gorm:"index;not null" json:"to_user_id"`
	ToUser     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ToUserID;references:ID" json:"-"`
	Text       string    `gorm:"type:text;not null;column:text" json:"text"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Message) TableName() string {
	return "message"
}
