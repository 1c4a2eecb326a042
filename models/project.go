package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry. Likes is a denormalized counter kept equal to
// the number of Like rows targeting the project; it is only written by the
// like toggle, never directly by API consumers.
type Project struct {
	ID              uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string      `json:"title" db:"title" gorm:"type:text;not null"`
	Description     string      `json:"description" db:"description" gorm:"type:text;not null"`
	FullDescription *string     `json:"fullDescription,omitempty" db:"full_description" gorm:"type:text"`
	Category        string      `json:"category" db:"category" gorm:"type:text;not null"`
	Tags            StringSlice `json:"tags" db:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	ImageURL        *string     `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	VideoURL        *string     `json:"videoUrl,omitempty" db:"video_url" gorm:"type:text"`
	DemoURL         *string     `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:text"`
	GithubURL       *string     `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	Technologies    StringSlice `json:"technologies" db:"technologies" gorm:"type:jsonb;not null;default:'[]'"`
	IsPublished     bool        `json:"isPublished" db:"is_published" gorm:"not null;default:false"`
	IsFeatured      bool        `json:"isFeatured" db:"is_featured" gorm:"not null;default:false"`
	Likes           int         `json:"likes" db:"likes" gorm:"not null;default:0"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at" gorm:"not null;default:now()"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at" gorm:"not null;default:now()"`
}
