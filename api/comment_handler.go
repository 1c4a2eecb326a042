package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
	hub       *Hub
}

func newCommentHandler(store database.Store, hub *Hub) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		hub:       hub,
	}
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "must be a valid id")
	}
	return &id, nil
}

func (h commentHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := queryUUID(r, "projectId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		achievementID, err := queryUUID(r, "achievementId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.store.Comments(r.Context(), projectID, achievementID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list comments", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// create attaches a comment to exactly one target and pushes a new_comment
// event to connected clients. The target must exist.
func (h commentHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxGetClaims(r.Context())
		if claims == nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		ref, err := req.Resolve()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.checkTargetExists(r, ref); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment := models.Comment{
			Content: req.Content,
			UserID:  claims.UserID,
		}
		switch ref.Type {
		case models.TargetProject:
			comment.ProjectID = &ref.ID
		case models.TargetAchievement:
			comment.AchievementID = &ref.ID
		}

		created, err := h.store.CreateComment(r.Context(), comment)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		author := models.UnknownAuthor(claims.UserID)
		if user, err := h.store.UserByID(r.Context(), claims.UserID); err == nil && user != nil {
			author = models.CommentAuthor{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
		}

		withUser := models.CommentWithUser{Comment: *created, Author: author}
		h.hub.Broadcast("new_comment", withUser)

		h.responder.WriteJSONWithStatus(w, withUser, http.StatusCreated)
	}
}

func (h commentHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.store.DeleteComment(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "comment deleted"})
	}
}

// checkTargetExists rejects comments pointing at missing entities so the
// dangling-reference cleanup on delete stays the only source of orphans.
func (h commentHandler) checkTargetExists(r *http.Request, ref models.TargetRef) error {
	switch ref.Type {
	case models.TargetProject:
		project, err := h.store.Project(r.Context(), ref.ID)
		if err != nil {
			return wrapDatabaseError("find project", "project", err)
		}
		if project == nil {
			return errs.NewNotFoundError("project not found")
		}
	case models.TargetAchievement:
		achievement, err := h.store.Achievement(r.Context(), ref.ID)
		if err != nil {
			return wrapDatabaseError("find achievement", "achievement", err)
		}
		if achievement == nil {
			return errs.NewNotFoundError("achievement not found")
		}
	}
	return nil
}
