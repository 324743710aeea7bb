package form

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/usecase/selection"
	submitTask "github.com/m04kA/SMC-FieldService/internal/usecase/submit_task"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

type mockSelection struct {
	mock.Mock
}

func (m *mockSelection) Execute(ctx context.Context, req selection.Request) (taskform.State, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(taskform.State), args.Error(1)
}

type mockSubmit struct {
	mock.Mock
}

func (m *mockSubmit) Execute(ctx context.Context) (*submitTask.Response, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submitTask.Response), args.Error(1)
}

func newHandler() (*Handler, *taskform.Store, *mockSelection, *mockSubmit) {
	store := taskform.NewStore()
	sel := &mockSelection{}
	sub := &mockSubmit{}
	return NewHandler(store, sel, sub, logger.NewNop()), store, sel, sub
}

func TestDispatch_SetForm(t *testing.T) {
	h, store, _, _ := newHandler()

	body := `{"type":"SET_FORM","payload":{"clientName":"Иванов","service":"1, 2, 3"}}`
	rec := httptest.NewRecorder()
	h.Dispatch(rec, httptest.NewRequest(http.MethodPost, "/api/v1/form/actions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var state taskform.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, []int64{1, 2, 3}, state.SelectedService)
	assert.Equal(t, "Иванов", store.State().ClientName)
}

func TestDispatch_Errors(t *testing.T) {
	h, _, _, _ := newHandler()

	for _, body := range []string{
		`{"type":"DROP_FORM"}`,
		`{"type":"SET_FIELD_VALUE","payload":{"field":"nope","value":1}}`,
		`not json`,
	} {
		rec := httptest.NewRecorder()
		h.Dispatch(rec, httptest.NewRequest(http.MethodPost, "/api/v1/form/actions", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestInventory(t *testing.T) {
	h, _, sel, _ := newHandler()

	state := taskform.InitialState()
	state.SelectedInventory = []domain.InventoryUsage{{ItemID: 4, Quantity: 1, Stock: 5}}
	sel.On("Execute", mock.Anything, selection.Request{Op: selection.OpSelect, ItemID: 4}).Return(state, nil)
	sel.On("Execute", mock.Anything, selection.Request{Op: selection.OpSelect, ItemID: 99}).
		Return(taskform.State{}, selection.ErrItemNotFound)

	rec := httptest.NewRecorder()
	h.Inventory(rec, httptest.NewRequest(http.MethodPost, "/api/v1/form/inventory",
		strings.NewReader(`{"op":"select","itemId":4}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Inventory(rec, httptest.NewRequest(http.MethodPost, "/api/v1/form/inventory",
		strings.NewReader(`{"op":"select","itemId":99}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmit_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *submitTask.Response
		err  error
		want int
	}{
		{name: "success", resp: &submitTask.Response{Result: outcome.Success(), Task: &domain.Task{ID: 1}}, want: http.StatusOK},
		{name: "validation", resp: &submitTask.Response{Result: outcome.Validation([]outcome.FieldError{{Field: "clientName"}})}, want: http.StatusUnprocessableEntity},
		{name: "network", resp: &submitTask.Response{Result: outcome.Network(nil)}, want: http.StatusServiceUnavailable},
		{name: "server", resp: &submitTask.Response{Result: outcome.Server(nil)}, want: http.StatusBadGateway},
		{name: "in progress", err: submitTask.ErrSubmitInProgress, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _, sub := newHandler()
			if tt.err != nil {
				sub.On("Execute", mock.Anything).Return(nil, tt.err)
			} else {
				sub.On("Execute", mock.Anything).Return(tt.resp, nil)
			}

			rec := httptest.NewRecorder()
			h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/v1/form/submit", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
