package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a free-text note attached to exactly one of a project or an
// achievement. At most one of the two target references is non-nil.
type Comment struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null"`
	UserID        uuid.UUID  `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	ProjectID     *uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;index"`
	AchievementID *uuid.UUID `json:"achievementId" db:"achievement_id" gorm:"type:uuid;index"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" gorm:"not null;default:now()"`

	User        *User        `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project     *Project     `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Achievement *Achievement `json:"-" gorm:"foreignKey:AchievementID;references:ID;constraint:OnDelete:CASCADE"`
}

// CommentAuthor is the reduced user projection embedded in comment listings.
type CommentAuthor struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
}

// CommentWithUser is a comment joined with its author. When the author row is
// missing the store substitutes an "Unknown User" sentinel instead of failing.
type CommentWithUser struct {
	Comment
	Author CommentAuthor `json:"user"`
}

// UnknownAuthor is the sentinel returned for comments whose user is gone.
func UnknownAuthor(userID uuid.UUID) CommentAuthor {
	return CommentAuthor{ID: userID, Name: "Unknown User", Avatar: nil}
}
