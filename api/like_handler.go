package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
)

type likeHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newLikeHandler(store database.Store) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// toggle flips the caller's like on a single target and returns the new
// membership plus the target's updated like count.
func (h likeHandler) toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req TargetPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		ref, err := req.Resolve()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.store.ToggleLike(r.Context(), claims.UserID, ref)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like", string(ref.Type), err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// userLikes lists every like the caller currently holds, newest first.
func (h likeHandler) userLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		likes, err := h.store.UserLikes(r.Context(), claims.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list likes", "like", err))
			return
		}

		h.responder.WriteJSON(w, likes)
	}
}
