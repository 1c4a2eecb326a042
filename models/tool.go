package models

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a technology badge shown on the site, ordered by Order then Name.
type Tool struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	IconURL    *string   `json:"iconUrl,omitempty" db:"icon_url" gorm:"type:text"`
	Category   *string   `json:"category,omitempty" db:"category" gorm:"type:text"`
	Website    *string   `json:"website,omitempty" db:"website" gorm:"type:text"`
	IsFeatured bool      `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	Order      int       `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:now()"`
}
