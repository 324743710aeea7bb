package models

import (
	"time"

	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
)

// Record черновик формы в локальном кеше (ключ taskFormData)
// Synced = false означает, что сервер еще не видел последнюю версию
type Record struct {
	Form    taskform.State `json:"form"`
	TaskID  int64          `json:"task_id"`
	Synced  bool           `json:"synced"`
	SavedAt time.Time      `json:"saved_at"`
}
