package catalog

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/selection"
)

// Handler справочники для выпадающих списков формы
// Query param search фильтрует по подстроке без учета регистра
type Handler struct {
	client CatalogClient
	logger Logger
}

func NewHandler(client CatalogClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Services GET /api/v1/catalog/services
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	respondOptions(h, w, r, "GET /catalog/services", h.client.ListServices,
		func(s domain.Service) string { return s.Name })
}

// PaymentMethods GET /api/v1/catalog/payment-methods
func (h *Handler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	respondOptions(h, w, r, "GET /catalog/payment-methods", h.client.ListPaymentMethods,
		func(p domain.PaymentMethod) string { return p.Name })
}

// Responsibles GET /api/v1/catalog/responsibles
func (h *Handler) Responsibles(w http.ResponseWriter, r *http.Request) {
	respondOptions(h, w, r, "GET /catalog/responsibles", h.client.ListResponsibles,
		func(e domain.Employee) string { return e.FullName })
}

func respondOptions[T any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	route string,
	list func(ctx context.Context) ([]T, error),
	label func(T) string,
) {
	options, err := list(r.Context())
	if err != nil {
		h.logger.Error("%s - Failed to load options: %v", route, err)
		handlers.RespondUpstreamError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, selection.FilterOptions(options, r.URL.Query().Get("search"), label))
}
