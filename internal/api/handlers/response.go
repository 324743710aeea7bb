package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется вход в систему"

	// maxBodyBytes ограничение тела JSON запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// OutcomeResponse тело ответа операции с типизированным результатом
type OutcomeResponse struct {
	Outcome outcome.Result `json:"outcome"`
	Data    interface{}    `json:"data,omitempty"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с сообщением для пользователя
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// OutcomeStatus HTTP код для типа результата
func OutcomeStatus(kind outcome.Kind) int {
	switch kind {
	case outcome.KindSuccess:
		return http.StatusOK
	case outcome.KindValidationError:
		return http.StatusUnprocessableEntity
	case outcome.KindNetworkError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// RespondOutcome пишет типизированный результат операции
func RespondOutcome(w http.ResponseWriter, result outcome.Result, data interface{}) {
	RespondJSON(w, OutcomeStatus(result.Kind), OutcomeResponse{Outcome: result, Data: data})
}

// RespondUpstreamError отвечает на ошибку, пришедшую из удаленного API
// Ошибки без связи с API считаются внутренними
func RespondUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fieldapi.ErrUnauthorized):
		RespondUnauthorized(w, msgUnauthorized)
	case errors.Is(err, fieldapi.ErrNetwork),
		errors.Is(err, fieldapi.ErrServer),
		errors.Is(err, fieldapi.ErrInvalidResponse):
		RespondOutcome(w, fieldapi.ToResult(err), nil)
	default:
		RespondInternalError(w)
	}
}

// DecodeJSON читает тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// PathID достает положительный ID из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid path parameter %s=%q", name, raw)
	}
	return id, nil
}

// QueryInt читает необязательный целый параметр, пустое значение дает 0
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %s=%q", name, raw)
	}
	return v, nil
}
