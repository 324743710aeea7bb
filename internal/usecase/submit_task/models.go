package submit_task

import (
	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

// Response результат отправки формы
// Task заполнен только при успехе
type Response struct {
	Result outcome.Result
	Task   *domain.Task
}
