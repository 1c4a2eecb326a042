package models

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is a certification or award entry. Likes follows the same
// denormalized-counter invariant as Project.Likes.
type Achievement struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Icon        string    `json:"icon" db:"icon" gorm:"type:text;not null"`
	Date        time.Time `json:"date" db:"date" gorm:"not null"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	Likes       int       `json:"likes" db:"likes" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:now()"`
}
