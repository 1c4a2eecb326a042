package api

import (
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/models"
)

type statsHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newStatsHandler(store database.Store) statsHandler {
	logger := log.With().Str("handlerName", "statsHandler").Logger()

	return statsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// get assembles the admin dashboard snapshot: entity totals, the aggregate
// like count, the five most-liked projects and the five newest comments.
func (h statsHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.Projects(r.Context(), database.ProjectFilter{})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list projects", "project", err))
			return
		}
		achievements, err := h.store.Achievements(r.Context(), database.AchievementFilter{})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list achievements", "achievement", err))
			return
		}
		tools, err := h.store.Tools(r.Context(), database.ToolFilter{})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list tools", "tool", err))
			return
		}
		comments, err := h.store.Comments(r.Context(), nil, nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list comments", "comment", err))
			return
		}

		stats := Stats{
			TotalProjects:     len(projects),
			TotalAchievements: len(achievements),
			TotalTools:        len(tools),
			TotalComments:     len(comments),
		}

		for _, p := range projects {
			if p.IsPublished {
				stats.PublishedProjects++
			} else {
				stats.DraftProjects++
			}
			stats.TotalLikes += p.Likes
		}
		for _, a := range achievements {
			stats.TotalLikes += a.Likes
		}

		popular := make([]models.Project, len(projects))
		copy(popular, projects)
		sort.SliceStable(popular, func(i, j int) bool {
			return popular[i].Likes > popular[j].Likes
		})
		if len(popular) > 5 {
			popular = popular[:5]
		}
		stats.PopularProjects = popular

		if len(comments) > 5 {
			comments = comments[:5]
		}
		stats.RecentComments = comments

		h.responder.WriteJSON(w, stats)
	}
}
