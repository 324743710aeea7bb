package calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	calendarUC "github.com/m04kA/SMC-FieldService/internal/usecase/calendar"
)

const (
	msgInvalidDate   = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidRange  = "начало периода позже конца"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase CalendarUseCase
	logger  Logger
}

func NewHandler(useCase CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: date (обязательный), from, to, mine
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := calendarUC.Request{
		Date: q.Get("date"),
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	if raw := q.Get("mine"); raw != "" {
		mine, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid mine flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.OnlyMine = mine
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, calendarUC.ErrInvalidDate):
			h.logger.Warn("GET /calendar - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, calendarUC.ErrInvalidRange):
			h.logger.Warn("GET /calendar - Invalid range: from=%s, to=%s", req.From, req.To)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /calendar - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondUpstreamError(w, err)
		}
		return
	}

	h.logger.Info("GET /calendar - date=%s, groups=%d, marked=%d, degraded=%t",
		resp.Date, len(resp.Groups), len(resp.MarkedDays), resp.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
