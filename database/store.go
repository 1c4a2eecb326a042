package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/bbarboza/portfolio-backend/models"
)

// ProjectFilter narrows project listings. Nil tri-state fields match
// everything; Limit <= 0 means no limit.
type ProjectFilter struct {
	Published *bool
	Featured  *bool
	Limit     int
	Offset    int
}

type AchievementFilter struct {
	Featured *bool
	Limit    int
	Offset   int
}

type ToolFilter struct {
	Featured *bool
	Limit    int
	Offset   int
}

// Store is the persistence contract shared by the in-memory and Postgres
// backends. Lookups return (nil, nil) when the record is absent; errors are
// reserved for real failures.
//
// Both implementations must behave identically from the caller's point of
// view, including the like-counter invariant: for any target, the stored
// Likes counter equals the number of Like rows referencing it.
type Store interface {
	// Users
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	AdminUser(ctx context.Context) (*models.User, error)
	// CreateUser bcrypt-hashes the plaintext password, assigns a fresh ID and
	// forces IsAdmin to false regardless of input.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)

	// Projects, ordered newest-created first.
	Projects(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	Project(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, project models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, upd models.ProjectUpdate) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) (bool, error)

	// Achievements, ordered newest-created first.
	Achievements(ctx context.Context, filter AchievementFilter) ([]models.Achievement, error)
	Achievement(ctx context.Context, id uuid.UUID) (*models.Achievement, error)
	CreateAchievement(ctx context.Context, achievement models.Achievement) (*models.Achievement, error)
	UpdateAchievement(ctx context.Context, id uuid.UUID, upd models.AchievementUpdate) (*models.Achievement, error)
	DeleteAchievement(ctx context.Context, id uuid.UUID) (bool, error)

	// Tools, ordered by display order then name.
	Tools(ctx context.Context, filter ToolFilter) ([]models.Tool, error)
	Tool(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	CreateTool(ctx context.Context, tool models.Tool) (*models.Tool, error)
	UpdateTool(ctx context.Context, id uuid.UUID, upd models.ToolUpdate) (*models.Tool, error)
	DeleteTool(ctx context.Context, id uuid.UUID) (bool, error)

	// Comments, newest first, joined with the author projection.
	Comments(ctx context.Context, projectID, achievementID *uuid.UUID) ([]models.CommentWithUser, error)
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) (bool, error)

	// ToggleLike flips the (user, target) like membership and keeps the
	// target's denormalized counter in step. The target must exist; a missing
	// target yields a not-found error before anything is mutated.
	ToggleLike(ctx context.Context, userID uuid.UUID, ref models.TargetRef) (models.ToggleResult, error)
	UserLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error)
}
