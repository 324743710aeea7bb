package fieldapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, logger.NewNop(), opts...)
}

func fastRetry(attempts int) Option {
	return WithRetry(RetryPolicy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxElapsed:      time.Second,
	})
}

func TestClient_GetTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks/12", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 12,
			"status": "новая",
			"service": "1, 2",
			"payment_method": "наличные",
			"start_date": "2024-06-01T10:00:00Z",
			"start_time": "10:00:00",
			"responsible": 3,
			"participants": [4, 5],
			"client_id": 7,
			"client_name": "Иванов И.И.",
			"client_address": "г. Казань, ул. Баумана, д. 12",
			"client_phone": "+79990000000",
			"inventory": [{"item_id": 9, "name": "Кабель", "unit": "м", "quantity": 2}]
		}`))
	}, WithTokenSource(staticToken("secret")))

	task, err := client.GetTask(context.Background(), 12)
	require.NoError(t, err)

	assert.Equal(t, int64(12), task.ID)
	assert.Equal(t, domain.StatusNew, task.Status)
	assert.Equal(t, []int64{1, 2}, task.ServiceIDs)
	assert.Equal(t, "10:00", task.StartTime.String())
	assert.Equal(t, []int64{4, 5}, task.ParticipantIDs)
	assert.Equal(t, domain.Address{City: "Казань", Street: "Баумана", Building: "12"}, task.ClientAddress)
	require.Len(t, task.Inventory, 1)
	assert.Equal(t, 2.0, task.Inventory[0].Quantity)
}

func TestClient_CreateTask_SendsWireFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body Task
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(0), body.ID)
		assert.Equal(t, "1, 3", body.Service)
		assert.Equal(t, "г. Казань, ул. Баумана, д. 12", body.ClientAddress)

		body.ID = 100
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	created, err := client.CreateTask(context.Background(), domain.Task{
		ID:            55,
		Status:        domain.StatusNew,
		ServiceIDs:    []int64{1, 3},
		ClientAddress: domain.Address{City: "Казань", Street: "Баумана", Building: "12"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	assert.Equal(t, []int64{1, 3}, created.ServiceIDs)
}

func TestClient_StatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "bad request", status: http.StatusBadRequest, body: "bad", wantErr: ErrServer},
		{name: "malformed json", status: http.StatusOK, body: "{not json", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetTask(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_StatusError_CarriesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("client_phone is required"))
	})

	_, err := client.CreateTask(context.Background(), domain.Task{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Code)
	assert.Contains(t, statusErr.Body, "client_phone")
}

func TestClient_RetriesIdempotentReads(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Монтаж", "cost": 1500}]`))
	}, fastRetry(3))

	services, err := client.ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_RetryGivesUp(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, fastRetry(2))

	_, err := client.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}, fastRetry(3))

	_, err := client.GetTask(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, fastRetry(3))

	_, err := client.CreateTask(context.Background(), domain.Task{Status: domain.StatusNew})
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, logger.NewNop())
	_, err := client.ListTasks(context.Background())

	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, outcome.KindNetworkError, Classify(err))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 20*time.Millisecond, logger.NewNop())
	_, err := client.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_UploadTaskPhoto(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/8/photos", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "report.jpg", header.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		_, _ = w.Write([]byte(`{"id": 3, "task_id": 8, "url": "/uploads/report.jpg"}`))
	})

	photo, err := client.UploadTaskPhoto(context.Background(), 8, "report.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), photo.ID)
	assert.Equal(t, "/uploads/report.jpg", photo.URL)
}

func TestClient_ConsumeInventory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tasks/4/inventory", r.URL.Path)
		var body inventoryConsumption
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []InventoryUsage{{ItemID: 9, Quantity: 1.5}}, body.Inventory)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.ConsumeInventory(context.Background(), 4, []domain.InventoryUsage{{ItemID: 9, Name: "Кабель", Quantity: 1.5, Stock: 10}})
	assert.NoError(t, err)
}

func TestClient_TaskParticipants(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/task-participants/4", r.URL.Path)
		_, _ = w.Write([]byte(`{"task_ids": [1, 7, 9]}`))
	})

	ids, err := client.TaskParticipants(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 7, 9}, ids)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ivan", req.Username)
		_, _ = w.Write([]byte(`{"token": "t0k", "user_id": 5, "username": "ivan", "position": "монтажник"}`))
	})

	resp, err := client.Login(context.Background(), "ivan", "pass")
	require.NoError(t, err)
	assert.Equal(t, "t0k", resp.Token)
	assert.Equal(t, int64(5), resp.UserID)
}

func TestClient_LoginWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": 5}`))
	})

	_, err := client.Login(context.Background(), "ivan", "pass")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_TaskDatesWithGracefulDegradation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	dates, err := client.TaskDatesWithGracefulDegradation(context.Background())
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.Empty(t, dates)
}

func TestToResult(t *testing.T) {
	assert.Equal(t, outcome.KindSuccess, ToResult(nil).Kind)
	assert.Equal(t, outcome.KindNetworkError, ToResult(ErrNetwork).Kind)
	assert.Equal(t, outcome.KindServerError, ToResult(&StatusError{Code: 500}).Kind)
	assert.True(t, ToResult(ErrNetwork).Retryable)
}

func TestClient_Clients_WireFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 3, "full_name": "Петров П.П.", "phone": "+7", "address": "г. Казань, ул. Баумана, д. 12"}]`))
		case http.MethodPost:
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "id")
			assert.Equal(t, "Сидоров", body["full_name"])
			assert.Equal(t, "г. Казань, ул. Кремлевская, д. 1", body["address"])
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 4, "full_name": "Сидоров", "address": "г. Казань, ул. Кремлевская, д. 1"}`))
		}
	})
	ctx := context.Background()

	clients, err := client.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Петров П.П.", clients[0].FullName)
	assert.Equal(t, domain.Address{City: "Казань", Street: "Баумана", Building: "12"}, clients[0].Address)

	created, err := client.CreateClient(ctx, domain.Client{
		ID:       99,
		FullName: "Сидоров",
		Address:  domain.Address{City: "Казань", Street: "Кремлевская", Building: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "Кремлевская", created.Address.Street)
}
