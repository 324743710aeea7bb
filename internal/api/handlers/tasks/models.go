package tasks

import (
	"github.com/m04kA/SMC-FieldService/internal/domain"
	changeStatus "github.com/m04kA/SMC-FieldService/internal/usecase/change_status"
)

// CompleteRequest HTTP request model, тело необязательно
type CompleteRequest struct {
	Inventory []UsageRequest `json:"inventory"`
}

// UsageRequest фактический расход позиции склада
type UsageRequest struct {
	ItemID   int64   `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

func (r *CompleteRequest) ToUseCaseRequest(taskID int64) changeStatus.CompleteRequest {
	req := changeStatus.CompleteRequest{TaskID: taskID}
	for _, u := range r.Inventory {
		req.Inventory = append(req.Inventory, domain.InventoryUsage{ItemID: u.ItemID, Quantity: u.Quantity})
	}
	return req
}
