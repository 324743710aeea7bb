package change_status

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
}

// validateConsumption проверяет расход по актуальным остаткам склада
func validateConsumption(usage []domain.InventoryUsage, items []domain.InventoryItem) error {
	stock := make(map[int64]float64, len(items))
	for _, item := range items {
		stock[item.ID] = item.Quantity
	}

	seen := make(map[int64]bool, len(usage))
	for _, u := range usage {
		if u.ItemID <= 0 {
			return fmt.Errorf("%w: inventory item id is required", ErrInvalidInput)
		}
		if seen[u.ItemID] {
			return fmt.Errorf("%w: duplicate inventory item id=%d", ErrInvalidInput, u.ItemID)
		}
		seen[u.ItemID] = true

		if u.Quantity < 0 {
			return fmt.Errorf("%w: negative quantity for item id=%d", ErrInvalidInput, u.ItemID)
		}
		available, ok := stock[u.ItemID]
		if !ok || u.Quantity > available {
			return fmt.Errorf("%w: item id=%d, requested %.2f, available %.2f", ErrInsufficientStock, u.ItemID, u.Quantity, available)
		}
	}
	return nil
}

func validatePhoto(req UploadPhotoRequest) error {
	if req.TaskID <= 0 {
		return fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}
	if req.Content == nil {
		return fmt.Errorf("%w: photo content is required", ErrInvalidInput)
	}
	if req.Size > domain.MaxPhotoSizeBytes {
		return ErrPhotoTooLarge
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !allowedPhotoExtensions[ext] {
		return fmt.Errorf("%w: unsupported photo type %q", ErrInvalidInput, ext)
	}
	return nil
}
