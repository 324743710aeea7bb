package form

import (
	"github.com/m04kA/SMC-FieldService/internal/usecase/selection"
)

// SelectionRequest HTTP request model
type SelectionRequest struct {
	Op       string  `json:"op"`
	ItemID   int64   `json:"itemId"`
	Quantity float64 `json:"quantity,omitempty"`
}

func (r *SelectionRequest) ToUseCaseRequest() selection.Request {
	return selection.Request{
		Op:       selection.Operation(r.Op),
		ItemID:   r.ItemID,
		Quantity: r.Quantity,
	}
}
