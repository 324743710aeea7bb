package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	feedUC "github.com/m04kA/SMC-FieldService/internal/usecase/feed"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
)

type mockFeed struct {
	mock.Mock
}

func (m *mockFeed) Execute(ctx context.Context, req feedUC.Request) (*feedUC.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedUC.Response), args.Error(1)
}

func TestHandle_Success(t *testing.T) {
	m := &mockFeed{}
	h := NewHandler(m, logger.NewNop())

	want := feedUC.Request{
		Filters: []feedUC.FilterSpec{{Type: feedUC.FilterStatus, Statuses: []string{string(domain.StatusNew)}}},
		Search:  "иван",
	}
	m.On("Execute", mock.Anything, want).
		Return(&feedUC.Response{Tasks: []domain.Task{{ID: 1}}, Total: 3}, nil)

	body := `{"filters":[{"type":"status","statuses":["новая"]}],"search":"иван"}`
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/feed", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Found)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown filter", err: feedUC.ErrUnknownFilter, want: http.StatusBadRequest},
		{name: "invalid filter", err: feedUC.ErrInvalidFilter, want: http.StatusBadRequest},
		{name: "offline", err: fmt.Errorf("%w: %w", feedUC.ErrInternal, fieldapi.ErrNetwork), want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockFeed{}
			h := NewHandler(m, logger.NewNop())
			m.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/feed", strings.NewReader(`{"filters":[]}`)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
