package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	calendarUC "github.com/m04kA/SMC-FieldService/internal/usecase/calendar"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
)

type mockCalendar struct {
	mock.Mock
}

func (m *mockCalendar) Execute(ctx context.Context, req calendarUC.Request) (*calendarUC.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendarUC.Response), args.Error(1)
}

func TestHandle_Success(t *testing.T) {
	m := &mockCalendar{}
	h := NewHandler(m, logger.NewNop())

	m.On("Execute", mock.Anything, calendarUC.Request{Date: "2024-06-01", From: "2024-06-01", To: "2024-06-30", OnlyMine: true}).
		Return(&calendarUC.Response{
			Date: "2024-06-01",
			Groups: []calendarUC.ClientGroup{
				{ClientID: 1, ClientName: "Иванов", Tasks: []domain.Task{{ID: 10}}},
			},
			MarkedDays: []string{"2024-06-01", "2024-06-03"},
		}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?date=2024-06-01&from=2024-06-01&to=2024-06-30&mine=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "Иванов", resp.Groups[0].ClientName)
	assert.Equal(t, []string{"2024-06-01", "2024-06-03"}, resp.MarkedDays)
	assert.False(t, resp.Degraded)
}

func TestHandle_Errors(t *testing.T) {
	m := &mockCalendar{}
	h := NewHandler(m, logger.NewNop())

	m.On("Execute", mock.Anything, calendarUC.Request{Date: "01.06.2024"}).Return(nil, calendarUC.ErrInvalidDate)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?date=01.06.2024", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?date=2024-06-01&mine=yes", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
