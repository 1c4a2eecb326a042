package api

import (
	"github.com/google/uuid"

	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler        authHandler
	userHandler        userHandler
	projectHandler     projectHandler
	achievementHandler achievementHandler
	toolHandler        toolHandler
	commentHandler     commentHandler
	likeHandler        likeHandler
	statsHandler       statsHandler
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a freshly issued credential and the public user.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ForgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// TargetPayload is the shared target-reference shape of like toggles and
// comments: exactly one of the two fields must name an existing entity.
// An empty string is equivalent to an absent field.
type TargetPayload struct {
	ProjectID     *string `json:"projectId"`
	AchievementID *string `json:"achievementId"`
}

// Resolve validates the pair and produces a typed target reference.
func (p TargetPayload) Resolve() (models.TargetRef, error) {
	projectID := normalizeRef(p.ProjectID)
	achievementID := normalizeRef(p.AchievementID)

	switch {
	case projectID == nil && achievementID == nil:
		return models.TargetRef{}, errs.NewBadRequestError("either projectId or achievementId is required")
	case projectID != nil && achievementID != nil:
		return models.TargetRef{}, errs.NewBadRequestError("projectId and achievementId are mutually exclusive")
	case projectID != nil:
		id, err := uuid.Parse(*projectID)
		if err != nil {
			return models.TargetRef{}, errs.NewInvalidFieldError("projectId", "must be a valid id")
		}
		return models.TargetRef{ID: id, Type: models.TargetProject}, nil
	default:
		id, err := uuid.Parse(*achievementID)
		if err != nil {
			return models.TargetRef{}, errs.NewInvalidFieldError("achievementId", "must be a valid id")
		}
		return models.TargetRef{ID: id, Type: models.TargetAchievement}, nil
	}
}

// normalizeRef treats "" and null as equivalent absence.
func normalizeRef(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// CommentRequest is the payload for POST /api/comments.
type CommentRequest struct {
	Content string `json:"content"`
	TargetPayload
}

// Stats is the aggregate admin dashboard snapshot.
type Stats struct {
	TotalProjects     int                      `json:"totalProjects"`
	PublishedProjects int                      `json:"publishedProjects"`
	DraftProjects     int                      `json:"draftProjects"`
	TotalAchievements int                      `json:"totalAchievements"`
	TotalTools        int                      `json:"totalTools"`
	TotalLikes        int                      `json:"totalLikes"`
	TotalComments     int                      `json:"totalComments"`
	RecentComments    []models.CommentWithUser `json:"recentComments"`
	PopularProjects   []models.Project         `json:"popularProjects"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
