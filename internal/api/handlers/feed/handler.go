package feed

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	feedUC "github.com/m04kA/SMC-FieldService/internal/usecase/feed"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownFilter      = "неизвестный тип фильтра"
	msgInvalidFilter      = "некорректные параметры фильтра"
)

type Handler struct {
	useCase FeedUseCase
	logger  Logger
}

func NewHandler(useCase FeedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/feed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FeedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /feed - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, feedUC.ErrUnknownFilter):
			h.logger.Warn("POST /feed - Unknown filter: %v", err)
			handlers.RespondBadRequest(w, msgUnknownFilter)

		case errors.Is(err, feedUC.ErrInvalidFilter):
			h.logger.Warn("POST /feed - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("POST /feed - Failed: filters=%d, error=%v", len(req.Filters), err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
