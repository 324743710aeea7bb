package entities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/service/entitylist"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidParams      = "некорректные параметры страницы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
)

// Handler общий обработчик справочников: клиенты, сотрудники, склад
type Handler[T any] struct {
	name   string
	list   EntityList[T]
	withID func(T, int64) T
	logger Logger
}

// NewHandler создает обработчик, withID проставляет ID из пути в тело запроса
func NewHandler[T any](name string, list EntityList[T], withID func(T, int64) T, logger Logger) *Handler[T] {
	return &Handler[T]{
		name:   name,
		list:   list,
		withID: withID,
		logger: logger,
	}
}

// List GET /api/v1/{name}
// Query params: page, size, search, refresh
func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		h.logger.Warn("GET /%s - Invalid page: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	size, err := handlers.QueryInt(r, "size")
	if err != nil {
		h.logger.Warn("GET /%s - Invalid size: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		if err := h.list.Refresh(r.Context()); err != nil {
			h.logger.Error("GET /%s - Failed to refresh: %v", h.name, err)
			handlers.RespondUpstreamError(w, err)
			return
		}
	}

	p, err := h.list.Page(r.Context(), page, size, r.URL.Query().Get("search"))
	if err != nil {
		if errors.Is(err, entitylist.ErrInvalidPage) {
			h.logger.Warn("GET /%s - Invalid page params: page=%d, size=%d", h.name, page, size)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /%s - Failed to list: %v", h.name, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromPage(p))
}

// Get GET /api/v1/{name}/{id}
func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	item, err := h.list.Get(id)
	if err != nil {
		h.logger.Warn("GET /%s/{id} - Not found: id=%d", h.name, id)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

// Create POST /api/v1/{name}
func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("POST /%s - Invalid request body: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.list.Create(r.Context(), h.withID(item, 0))
	if err != nil {
		h.logger.Error("POST /%s - Failed to create: %v", h.name, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	h.logger.Info("POST /%s - Created", h.name)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Update PUT /api/v1/{name}/{id}
// Изменение видно в списке сразу, при отказе сервера откатывается
func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /%s/{id} - Invalid ID: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var item T
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("PUT /%s/{id} - Invalid request body: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.list.Edit(r.Context(), h.withID(item, id))
	if err != nil {
		if errors.Is(err, entitylist.ErrNotFound) {
			h.logger.Warn("PUT /%s/{id} - Not found: id=%d", h.name, id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PUT /%s/{id} - Failed to update: id=%d, error=%v", h.name, id, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	h.logger.Info("PUT /%s/{id} - Updated: id=%d", h.name, id)
	handlers.RespondJSON(w, http.StatusOK, saved)
}

// Delete DELETE /api/v1/{name}/{id}
func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /%s/{id} - Invalid ID: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.list.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entitylist.ErrNotFound) {
			h.logger.Warn("DELETE /%s/{id} - Not found: id=%d", h.name, id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /%s/{id} - Failed to delete: id=%d, error=%v", h.name, id, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	h.logger.Info("DELETE /%s/{id} - Deleted: id=%d", h.name, id)
	w.WriteHeader(http.StatusNoContent)
}
