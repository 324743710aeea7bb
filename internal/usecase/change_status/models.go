package change_status

import (
	"io"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// CompleteRequest запрос на завершение задачи
type CompleteRequest struct {
	TaskID    int64
	Inventory []domain.InventoryUsage // фактический расход материалов, может быть пустым
}

// UploadPhotoRequest запрос на загрузку фото отчета
type UploadPhotoRequest struct {
	TaskID   int64
	Filename string
	Size     int64
	Content  io.Reader
}
