package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public, authenticated and admin route groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, hub *Hub) {
	r.Get("/ws", hub.serveWS())

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", handlers.authHandler.register())
			r.Post("/auth/login", handlers.authHandler.login())
			r.Post("/auth/forgot-password", handlers.authHandler.forgotPassword())

			r.Get("/profile", handlers.userHandler.getProfile())

			r.Get("/projects", handlers.projectHandler.getAll())
			r.Get("/projects/{projectID}", handlers.projectHandler.get())

			r.Get("/achievements", handlers.achievementHandler.getAll())
			r.Get("/achievements/{achievementID}", handlers.achievementHandler.get())

			r.Get("/tools", handlers.toolHandler.getAll())
			r.Get("/tools/{toolID}", handlers.toolHandler.get())

			r.Get("/comments", handlers.commentHandler.getAll())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Patch("/user/profile", handlers.userHandler.updateProfile())
			r.Patch("/user/about", handlers.userHandler.updateAbout())

			r.Post("/comments", handlers.commentHandler.create())

			r.Post("/likes/toggle", handlers.likeHandler.toggle())
			r.Get("/likes/user", handlers.likeHandler.userLikes())
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(authMiddleware.requireAdmin)

			r.Post("/projects", handlers.projectHandler.create())
			r.Patch("/projects/{projectID}", handlers.projectHandler.update())
			r.Delete("/projects/{projectID}", handlers.projectHandler.delete())

			r.Post("/achievements", handlers.achievementHandler.create())
			r.Patch("/achievements/{achievementID}", handlers.achievementHandler.update())
			r.Delete("/achievements/{achievementID}", handlers.achievementHandler.delete())

			r.Post("/tools", handlers.toolHandler.create())
			r.Patch("/tools/{toolID}", handlers.toolHandler.update())
			r.Delete("/tools/{toolID}", handlers.toolHandler.delete())

			r.Delete("/comments/{commentID}", handlers.commentHandler.delete())

			r.Get("/admin/stats", handlers.statsHandler.get())
		})
	})
}
