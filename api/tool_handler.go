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

type toolHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newToolHandler(store database.Store) toolHandler {
	logger := log.With().Str("handlerName", "toolHandler").Logger()

	return toolHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

func (h toolHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter database.ToolFilter
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

		tools, err := h.store.Tools(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list tools", "tool", err))
			return
		}

		h.responder.WriteJSON(w, tools)
	}
}

func (h toolHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "toolID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tool, err := h.store.Tool(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tool", "tool", err))
			return
		}
		if tool == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tool not found"))
			return
		}

		h.responder.WriteJSON(w, tool)
	}
}

func (h toolHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tool models.Tool
		if err := json.NewDecoder(r.Body).Decode(&tool); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if tool.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		created, err := h.store.CreateTool(r.Context(), tool)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tool", "tool", err))
			return
		}

		h.responder.WriteJSONWithStatus(w, created, http.StatusCreated)
	}
}

func (h toolHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "toolID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var upd models.ToolUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		tool, err := h.store.UpdateTool(r.Context(), id, upd)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update tool", "tool", err))
			return
		}
		if tool == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tool not found"))
			return
		}

		h.responder.WriteJSON(w, tool)
	}
}

func (h toolHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "toolID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.store.DeleteTool(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tool", "tool", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("tool not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "tool deleted"})
	}
}
