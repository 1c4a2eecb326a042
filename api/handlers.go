package api

import (
	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store database.Store, tokens *auth.TokenManager, hub *Hub, mailer Mailer, frontendURL string) *routeHandlers {
	return &routeHandlers{
		authHandler:        newAuthHandler(store, tokens, mailer, frontendURL),
		userHandler:        newUserHandler(store),
		projectHandler:     newProjectHandler(store),
		achievementHandler: newAchievementHandler(store),
		toolHandler:        newToolHandler(store),
		commentHandler:     newCommentHandler(store, hub),
		likeHandler:        newLikeHandler(store),
		statsHandler:       newStatsHandler(store),
	}
}
