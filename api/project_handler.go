package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bbarboza/portfolio-backend/database"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newProjectHandler(store database.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// queryBool parses an optional tri-state boolean query parameter.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "must be true or false")
	}
	return &val, nil
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a non-negative integer")
	}
	return val, nil
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a valid id")
	}
	return id, nil
}

func (h projectHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter database.ProjectFilter
		var err error

		if filter.Published, err = queryBool(r, "published"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
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

		projects, err := h.store.Projects(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list projects", "project", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

func (h projectHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.Project(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if project.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if project.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		if project.Category == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		created, err := h.store.CreateProject(r.Context(), project)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteJSONWithStatus(w, created, http.StatusCreated)
	}
}

func (h projectHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var upd models.ProjectUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		project, err := h.store.UpdateProject(r.Context(), id, upd)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.store.DeleteProject(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "project deleted"})
	}
}
