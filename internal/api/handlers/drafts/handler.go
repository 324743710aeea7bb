package drafts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	draftsService "github.com/m04kA/SMC-FieldService/internal/service/drafts"
)

const (
	msgInvalidTaskID   = "некорректный ID задачи"
	msgInvalidParams   = "некорректные параметры запроса"
	msgNotDraftable    = "задачу в текущем статусе нельзя сохранить как черновик"
	msgNotEditable     = "завершенную задачу нельзя редактировать"
	msgTaskNotFound    = "задача не найдена"
	msgNoPendingDraft  = "нет черновика для синхронизации"
	msgDraftSuperseded = "черновик на сервере уже изменен, локальная копия удалена"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Save POST /api/v1/drafts
// Без связи с сервером черновик сохраняется локально, ответ 202
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Save(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, draftsService.ErrSavedOffline):
			h.logger.Warn("POST /drafts - Saved offline: %v", err)
			handlers.RespondJSON(w, http.StatusAccepted, rec)

		case errors.Is(err, draftsService.ErrNotDraftable):
			h.logger.Warn("POST /drafts - Not draftable: %v", err)
			handlers.RespondConflict(w, msgNotDraftable)

		default:
			h.logger.Error("POST /drafts - Failed to save draft: %v", err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	h.logger.Info("POST /drafts - Draft saved: task_id=%d", rec.TaskID)
	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Load GET /api/v1/drafts/{taskId}
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	taskID, err := handlers.PathID(r, "taskId")
	if err != nil {
		h.logger.Warn("GET /drafts/{id} - Invalid task ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return
	}

	rec, err := h.service.Load(r.Context(), taskID)
	if err != nil {
		switch {
		case errors.Is(err, draftsService.ErrTaskNotFound):
			h.logger.Warn("GET /drafts/{id} - Task not found: task_id=%d", taskID)
			handlers.RespondNotFound(w, msgTaskNotFound)

		case errors.Is(err, draftsService.ErrNotEditable):
			h.logger.Warn("GET /drafts/{id} - Task not editable: task_id=%d", taskID)
			handlers.RespondConflict(w, msgNotEditable)

		default:
			h.logger.Error("GET /drafts/{id} - Failed to load task: task_id=%d, error=%v", taskID, err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Pending GET /api/v1/drafts/pending
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Pending(r.Context())
	if err != nil {
		if errors.Is(err, draftsService.ErrNoPendingDraft) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.logger.Error("GET /drafts/pending - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Reconcile POST /api/v1/drafts/reconcile
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Reconcile(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, draftsService.ErrNoPendingDraft):
			handlers.RespondNotFound(w, msgNoPendingDraft)

		case errors.Is(err, draftsService.ErrDraftSuperseded):
			h.logger.Warn("POST /drafts/reconcile - Draft superseded: %v", err)
			handlers.RespondConflict(w, msgDraftSuperseded)

		default:
			h.logger.Error("POST /drafts/reconcile - Failed: %v", err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	h.logger.Info("POST /drafts/reconcile - Draft synced: task_id=%d", rec.TaskID)
	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Discard DELETE /api/v1/drafts
// Query params: remote=true удаляет черновик и на сервере
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	remote := false
	if raw := r.URL.Query().Get("remote"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("DELETE /drafts - Invalid remote flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		remote = v
	}

	if err := h.service.Discard(r.Context(), remote); err != nil {
		h.logger.Error("DELETE /drafts - Failed to discard draft: remote=%t, error=%v", remote, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	h.logger.Info("DELETE /drafts - Draft discarded: remote=%t", remote)
	w.WriteHeader(http.StatusNoContent)
}
