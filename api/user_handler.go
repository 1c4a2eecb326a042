package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newUserHandler(store database.Store) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getProfile serves the site owner's public profile to anonymous visitors.
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.store.AdminUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find admin user", "user", err))
			return
		}
		if admin == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("profile not found"))
			return
		}

		h.responder.WriteJSON(w, admin.Profile())
	}
}

// updateProfile applies a partial update to the authenticated user's account.
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var upd models.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		user, err := h.store.UpdateUser(r.Context(), claims.UserID, upd)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"user": user})
	}
}

// updateAbout edits the about-section fields of the authenticated user.
// It accepts the same partial shape as updateProfile but ignores the
// identity fields so the about form cannot rename the account.
func (h userHandler) updateAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var upd models.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		upd.Name = nil
		upd.Avatar = nil

		user, err := h.store.UpdateUser(r.Context(), claims.UserID, upd)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"user": user})
	}
}
