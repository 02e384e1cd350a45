package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	snapshot, err := h.services.TodoService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTodos").Msg("error listing todos")
		h.writeServiceError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, snapshot.Clone(), http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listTodos").Msg("error writing response")
	}
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTodo").Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.TodoService.Create(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTodo").Msg("error creating todo")
		h.writeServiceError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, item, http.StatusCreated); err != nil {
		log.Err(err).Str("func", "*Handler.createTodo").Msg("error writing response")
	}
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := models.ItemID(chi.URLParam(r, "id"))

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateTodo").Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.TodoService.Update(r.Context(), id, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTodo").Str("id", string(id)).Msg("error updating todo")
		h.writeServiceError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, item, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.updateTodo").Msg("error writing response")
	}
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := models.ItemID(chi.URLParam(r, "id"))

	if err := h.services.TodoService.Delete(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTodo").Str("id", string(id)).Msg("error deleting todo")
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := http.StatusText(status)
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided), errors.Is(err, service.ErrItemNotFound):
		message = err.Error()
	}

	utils.WriteError(w, message, status)
}
