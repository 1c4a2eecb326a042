package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

type achievementHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newAchievementHandler(store database.Store) achievementHandler {
	logger := log.With().Str("handlerName", "achievementHandler").Logger()

	return achievementHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// achievementRequest accepts the wire shape of a new achievement. Date takes
// either RFC3339 or a bare YYYY-MM-DD date.
type achievementRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Date        *models.DateTime `json:"date"`
	IsFeatured  bool             `json:"isFeatured"`
}

func (h achievementHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter database.AchievementFilter
		var err error

		if filter.Featured, err = queryBool(r, "featured"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.Limit, err = queryInt(r, "limit"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.Offset, err = queryInt(r, "offset"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		achievements, err := h.store.Achievements(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list achievements", "achievement", err))
			return
		}

		h.responder.WriteJSON(w, achievements)
	}
}

func (h achievementHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		achievement, err := h.store.Achievement(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		h.responder.WriteJSON(w, achievement)
	}
}

func (h achievementHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req achievementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		if req.Icon == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("icon"))
			return
		}

		date := time.Now()
		if req.Date != nil {
			date = req.Date.Time
		}

		created, err := h.store.CreateAchievement(r.Context(), models.Achievement{
			Title:       req.Title,
			Description: req.Description,
			Icon:        req.Icon,
			Date:        date,
			IsFeatured:  req.IsFeatured,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create achievement", "achievement", err))
			return
		}

		h.responder.WriteJSONWithStatus(w, created, http.StatusCreated)
	}
}

func (h achievementHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var upd models.AchievementUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		achievement, err := h.store.UpdateAchievement(r.Context(), id, upd)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update achievement", "achievement", err))
			return
		}
		if achievement == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		h.responder.WriteJSON(w, achievement)
	}
}

func (h achievementHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.store.DeleteAchievement(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete achievement", "achievement", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("achievement not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "achievement deleted"})
	}
}
