package catalog

import (
	"context"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

type CatalogClient interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	ListResponsibles(ctx context.Context) ([]domain.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
