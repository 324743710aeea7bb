package tasks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/domain"
	changeStatus "github.com/m04kA/SMC-FieldService/internal/usecase/change_status"
)

const (
	msgInvalidTaskID      = "некорректный ID задачи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTaskNotFound       = "задача не найдена"
	msgIllegalTransition  = "недопустимая смена статуса задачи"
	msgInsufficientStock  = "расход превышает остаток на складе"
	msgInvalidInput       = "некорректные данные"
	msgPhotoTooLarge      = "фото слишком большое"
	msgPhotosNotAllowed   = "фото можно прикладывать только к задаче в работе или выполненной"
	msgPhotoRequired      = "не передан файл фото"

	photoFormField = "photo"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/tasks/{taskId}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "POST /tasks/{id}/start")
	if !ok {
		return
	}

	task, err := h.useCase.StartWork(r.Context(), taskID)
	if err != nil {
		h.respondError(w, "POST /tasks/{id}/start", taskID, err)
		return
	}

	h.logger.Info("POST /tasks/{id}/start - Task started: task_id=%d", taskID)
	handlers.RespondJSON(w, http.StatusOK, task)
}

// Complete POST /api/v1/tasks/{taskId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "POST /tasks/{id}/complete")
	if !ok {
		return
	}

	var req CompleteRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /tasks/{id}/complete - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	task, err := h.useCase.Complete(r.Context(), req.ToUseCaseRequest(taskID))
	if err != nil {
		h.respondError(w, "POST /tasks/{id}/complete", taskID, err)
		return
	}

	h.logger.Info("POST /tasks/{id}/complete - Task completed: task_id=%d, inventory=%d", taskID, len(req.Inventory))
	handlers.RespondJSON(w, http.StatusOK, task)
}

// Cancel POST /api/v1/tasks/{taskId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "POST /tasks/{id}/cancel")
	if !ok {
		return
	}

	task, err := h.useCase.Cancel(r.Context(), taskID)
	if err != nil {
		h.respondError(w, "POST /tasks/{id}/cancel", taskID, err)
		return
	}

	h.logger.Info("POST /tasks/{id}/cancel - Task cancelled: task_id=%d", taskID)
	handlers.RespondJSON(w, http.StatusOK, task)
}

// Delete DELETE /api/v1/tasks/{taskId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "DELETE /tasks/{id}")
	if !ok {
		return
	}

	if err := h.useCase.Delete(r.Context(), taskID); err != nil {
		h.respondError(w, "DELETE /tasks/{id}", taskID, err)
		return
	}

	h.logger.Info("DELETE /tasks/{id} - Task deleted: task_id=%d", taskID)
	w.WriteHeader(http.StatusNoContent)
}

// Photos GET /api/v1/tasks/{taskId}/photos
func (h *Handler) Photos(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "GET /tasks/{id}/photos")
	if !ok {
		return
	}

	photos, err := h.useCase.Photos(r.Context(), taskID)
	if err != nil {
		h.respondError(w, "GET /tasks/{id}/photos", taskID, err)
		return
	}
	if photos == nil {
		photos = []domain.Photo{}
	}

	handlers.RespondJSON(w, http.StatusOK, photos)
}

// UploadPhoto POST /api/v1/tasks/{taskId}/photos
// multipart/form-data, файл в поле photo
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r, "POST /tasks/{id}/photos")
	if !ok {
		return
	}

	// запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxPhotoSizeBytes+(1<<20))
	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /tasks/{id}/photos - Body too large: task_id=%d", taskID)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgPhotoTooLarge)
			return
		}
		h.logger.Warn("POST /tasks/{id}/photos - Missing photo: task_id=%d, error=%v", taskID, err)
		handlers.RespondBadRequest(w, msgPhotoRequired)
		return
	}
	defer file.Close()

	photo, err := h.useCase.UploadPhoto(r.Context(), changeStatus.UploadPhotoRequest{
		TaskID:   taskID,
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		h.respondError(w, "POST /tasks/{id}/photos", taskID, err)
		return
	}

	h.logger.Info("POST /tasks/{id}/photos - Photo uploaded: task_id=%d, photo_id=%d", taskID, photo.ID)
	handlers.RespondJSON(w, http.StatusCreated, photo)
}

func (h *Handler) taskID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "taskId")
	if err != nil {
		h.logger.Warn("%s - Invalid task ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTaskID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, taskID int64, err error) {
	switch {
	case errors.Is(err, changeStatus.ErrTaskNotFound):
		h.logger.Warn("%s - Task not found: task_id=%d", route, taskID)
		handlers.RespondNotFound(w, msgTaskNotFound)

	case errors.Is(err, changeStatus.ErrIllegalTransition):
		h.logger.Warn("%s - Illegal transition: task_id=%d, error=%v", route, taskID, err)
		handlers.RespondConflict(w, msgIllegalTransition)

	case errors.Is(err, changeStatus.ErrInsufficientStock):
		h.logger.Warn("%s - Insufficient stock: task_id=%d, error=%v", route, taskID, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInsufficientStock)

	case errors.Is(err, changeStatus.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: task_id=%d, error=%v", route, taskID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, changeStatus.ErrPhotoTooLarge):
		handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgPhotoTooLarge)

	case errors.Is(err, changeStatus.ErrPhotosNotAllowed):
		h.logger.Warn("%s - Photos not allowed: task_id=%d", route, taskID)
		handlers.RespondConflict(w, msgPhotosNotAllowed)

	default:
		h.logger.Error("%s - Failed: task_id=%d, error=%v", route, taskID, err)
		handlers.RespondUpstreamError(w, err)
	}
}
