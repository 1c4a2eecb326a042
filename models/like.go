package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TargetType discriminates what a Like points at.
type TargetType string

const (
	TargetProject     TargetType = "project"
	TargetAchievement TargetType = "achievement"
)

// Like records that a user likes a target. The (UserID, TargetID, TargetType)
// triple is unique; rows are created and destroyed only by the like toggle.
//
// The wire format keeps the historical projectId/achievementId pair, but the
// row stores a single target reference so one composite unique index can back
// the uniqueness invariant.
type Like struct {
	ID         uuid.UUID  `db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID     uuid.UUID  `db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_target"`
	TargetID   uuid.UUID  `db:"target_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_target"`
	TargetType TargetType `db:"target_type" gorm:"type:text;not null;uniqueIndex:idx_like_user_target"`
	CreatedAt  time.Time  `db:"created_at" gorm:"not null;default:now()"`
}

type likeJSON struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	ProjectID     *uuid.UUID `json:"projectId"`
	AchievementID *uuid.UUID `json:"achievementId"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// MarshalJSON renders the target reference as projectId/achievementId.
func (l Like) MarshalJSON() ([]byte, error) {
	out := likeJSON{ID: l.ID, UserID: l.UserID, CreatedAt: l.CreatedAt}
	target := l.TargetID
	switch l.TargetType {
	case TargetProject:
		out.ProjectID = &target
	case TargetAchievement:
		out.AchievementID = &target
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the wire shape produced by MarshalJSON.
func (l *Like) UnmarshalJSON(data []byte) error {
	var in likeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.ID = in.ID
	l.UserID = in.UserID
	l.CreatedAt = in.CreatedAt
	switch {
	case in.ProjectID != nil:
		l.TargetID = *in.ProjectID
		l.TargetType = TargetProject
	case in.AchievementID != nil:
		l.TargetID = *in.AchievementID
		l.TargetType = TargetAchievement
	}
	return nil
}

// TargetRef is a validated reference to a like/comment target.
type TargetRef struct {
	ID   uuid.UUID
	Type TargetType
}

// ToggleResult is the outcome of a like toggle: the new membership state and
// the target's stored counter re-read after the mutation.
type ToggleResult struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}
