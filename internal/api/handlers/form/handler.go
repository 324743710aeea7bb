package form

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/usecase/selection"
	submitTask "github.com/m04kA/SMC-FieldService/internal/usecase/submit_task"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие формы"
	msgUnknownField       = "неизвестное поле формы"
	msgInvalidPayload     = "некорректные данные действия"
	msgUnknownOperation   = "неизвестная операция выбора"
	msgItemNotFound       = "позиция не найдена на складе"
	msgSubmitInProgress   = "задача уже отправляется"
	msgNotSubmittable     = "задачу в текущем статусе нельзя отправить"

	maxActionBytes = 1 << 20
)

type Handler struct {
	store     FormStore
	selection SelectionUseCase
	submit    SubmitUseCase
	logger    Logger
}

func NewHandler(store FormStore, selection SelectionUseCase, submit SubmitUseCase, logger Logger) *Handler {
	return &Handler{
		store:     store,
		selection: selection,
		submit:    submit,
		logger:    logger,
	}
}

// State GET /api/v1/form
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.store.State())
}

// Dispatch POST /api/v1/form/actions
// Тело запроса - конверт {"type": ..., "payload": ...}
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBytes))
	if err != nil {
		h.logger.Warn("POST /form/actions - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	action, err := taskform.DecodeAction(body)
	if err != nil {
		h.logger.Warn("POST /form/actions - Invalid action: %v", err)
		switch {
		case errors.Is(err, taskform.ErrUnknownAction):
			handlers.RespondBadRequest(w, msgUnknownAction)
		case errors.Is(err, taskform.ErrUnknownField):
			handlers.RespondBadRequest(w, msgUnknownField)
		default:
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	state := h.store.Dispatch(action)
	handlers.RespondJSON(w, http.StatusOK, state)
}

// Inventory POST /api/v1/form/inventory
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /form/inventory - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	state, err := h.selection.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrUnknownOperation):
			h.logger.Warn("POST /form/inventory - Unknown operation: op=%s", req.Op)
			handlers.RespondBadRequest(w, msgUnknownOperation)

		case errors.Is(err, selection.ErrItemNotFound):
			h.logger.Warn("POST /form/inventory - Item not found: item_id=%d", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("POST /form/inventory - Failed: op=%s, item_id=%d, error=%v", req.Op, req.ItemID, err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Submit POST /api/v1/form/submit
// Ответ всегда содержит типизированный результат, код зависит от его типа
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.submit.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, submitTask.ErrSubmitInProgress):
			h.logger.Warn("POST /form/submit - Submission already in progress")
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, submitTask.ErrNotSubmittable):
			h.logger.Warn("POST /form/submit - Task cannot be submitted: %v", err)
			handlers.RespondConflict(w, msgNotSubmittable)

		default:
			h.logger.Error("POST /form/submit - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if resp.Result.OK() {
		h.logger.Info("POST /form/submit - Task submitted: task_id=%d", resp.Task.ID)
		handlers.RespondOutcome(w, resp.Result, resp.Task)
		return
	}

	h.logger.Warn("POST /form/submit - Submission failed: kind=%s", resp.Result.Kind)
	handlers.RespondOutcome(w, resp.Result, h.store.State())
}
