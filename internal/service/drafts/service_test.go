package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/infra/storage/kv"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/internal/service/drafts/models"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
	"github.com/m04kA/SMC-FieldService/pkg/ptr"
)

type mockTasks struct {
	mock.Mock
}

func (m *mockTasks) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTasks) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTasks) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTasks) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fixedTime struct{}

func (fixedTime) Now() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

type fixture struct {
	svc   *Service
	api   *mockTasks
	store *kv.Repository
	form  *taskform.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := kv.NewRepository(db, "sqlite3")
	require.NoError(t, store.Init(context.Background()))

	api := &mockTasks{}
	form := taskform.NewStore()
	svc := NewService(store, api, form, logger.NewNop())
	svc.timeProvider = fixedTime{}

	return &fixture{svc: svc, api: api, store: store, form: form}
}

func (f *fixture) cached(t *testing.T) *models.Record {
	t.Helper()
	raw, err := f.store.Get(context.Background(), domain.KeyTaskFormData)
	if err != nil {
		return nil
	}
	var rec models.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return &rec
}

var networkErr = fmt.Errorf("%w: connection refused", fieldapi.ErrNetwork)

func TestSave_CreatesServerDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{ClientName: ptr.Ptr("Иванов")}})

	f.api.On("CreateTask", ctx, mock.MatchedBy(func(task domain.Task) bool {
		return task.Status == domain.StatusDraft && task.ClientName == "Иванов"
	})).Return(&domain.Task{ID: 15, Status: domain.StatusDraft}, nil).Once()

	rec, err := f.svc.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15), rec.TaskID)
	assert.True(t, rec.Synced)

	state := f.form.State()
	assert.Equal(t, int64(15), state.ID)
	assert.Equal(t, domain.StatusDraft, state.Status)
	assert.Equal(t, "Иванов", state.ClientName)

	cached := f.cached(t)
	require.NotNil(t, cached)
	assert.Equal(t, int64(15), cached.TaskID)
	assert.True(t, cached.Synced)
	assert.Equal(t, "Иванов", cached.Form.ClientName)
}

func TestSave_UpdatesExistingDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 4, Status: domain.StatusDraft}))

	f.api.On("UpdateTask", ctx, mock.MatchedBy(func(task domain.Task) bool { return task.ID == 4 })).
		Return(&domain.Task{ID: 4, Status: domain.StatusDraft}, nil).Once()

	_, err := f.svc.Save(ctx)
	require.NoError(t, err)
	f.api.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestSave_OfflineThenReconcile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{Description: ptr.Ptr("протечка")}})

	f.api.On("CreateTask", ctx, mock.Anything).Return(nil, networkErr).Once()

	rec, err := f.svc.Save(ctx)
	assert.ErrorIs(t, err, ErrSavedOffline)
	assert.ErrorIs(t, err, fieldapi.ErrNetwork)
	require.NotNil(t, rec)
	assert.False(t, rec.Synced)

	pending, err := f.svc.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, "протечка", pending.Form.Description)

	f.api.On("CreateTask", ctx, mock.MatchedBy(func(task domain.Task) bool {
		return task.Description == "протечка" && task.Status == domain.StatusDraft
	})).Return(&domain.Task{ID: 21, Status: domain.StatusDraft}, nil).Once()

	synced, err := f.svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(21), synced.TaskID)
	assert.Equal(t, int64(21), f.form.State().ID)

	_, err = f.svc.Pending(ctx)
	assert.ErrorIs(t, err, ErrNoPendingDraft)
}

func TestSave_RejectsNonDraftableStatus(t *testing.T) {
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 4, Status: domain.StatusInProgress}))

	_, err := f.svc.Save(context.Background())
	assert.ErrorIs(t, err, ErrNotDraftable)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestSave_ServerErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.api.On("CreateTask", ctx, mock.Anything).
		Return(nil, &fieldapi.StatusError{Method: "POST", Path: "/tasks", Code: 500}).Once()

	_, err := f.svc.Save(ctx)
	assert.ErrorIs(t, err, fieldapi.ErrServer)
	assert.Nil(t, f.cached(t))
}

func TestReconcile_ServerWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 8, Status: domain.StatusDraft}))
	f.api.On("UpdateTask", ctx, mock.Anything).Return(nil, networkErr).Once()

	_, err := f.svc.Save(ctx)
	require.ErrorIs(t, err, ErrSavedOffline)

	f.api.On("GetTask", ctx, int64(8)).Return(&domain.Task{ID: 8, Status: domain.StatusNew}, nil).Once()

	_, err = f.svc.Reconcile(ctx)
	assert.ErrorIs(t, err, ErrDraftSuperseded)
	assert.Nil(t, f.cached(t))
	f.api.AssertNumberOfCalls(t, "UpdateTask", 1)
}

func TestReconcile_NothingPending(t *testing.T) {
	_, err := newFixture(t).svc.Reconcile(context.Background())
	assert.ErrorIs(t, err, ErrNoPendingDraft)
}

func TestLoad_FromServer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.api.On("GetTask", ctx, int64(5)).Return(&domain.Task{
		ID:         5,
		Status:     domain.StatusDraft,
		ClientName: "Петров",
		StartDate:  "2024-06-01T00:00:00Z",
	}, nil).Once()

	rec, err := f.svc.Load(ctx, 5)
	require.NoError(t, err)
	assert.True(t, rec.Synced)

	state := f.form.State()
	assert.Equal(t, "Петров", state.ClientName)
	assert.Equal(t, "2024-06-01", state.StartDate)
	assert.NotNil(t, f.cached(t))
}

func TestLoad_FallsBackToCacheOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 9, Status: domain.StatusDraft, Description: "офлайн"}))
	f.api.On("UpdateTask", ctx, mock.Anything).Return(nil, networkErr).Once()
	_, err := f.svc.Save(ctx)
	require.ErrorIs(t, err, ErrSavedOffline)

	f.form.Dispatch(taskform.ResetForm{})
	f.api.On("GetTask", ctx, int64(9)).Return(nil, networkErr)

	rec, err := f.svc.Load(ctx, 9)
	require.NoError(t, err)
	assert.False(t, rec.Synced)
	assert.Equal(t, "офлайн", f.form.State().Description)

	f.api.On("GetTask", ctx, int64(10)).Return(nil, networkErr)
	_, err = f.svc.Load(ctx, 10)
	assert.ErrorIs(t, err, fieldapi.ErrNetwork)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.api.On("GetTask", ctx, int64(1)).Return(nil, fmt.Errorf("%w: GET /tasks/1", fieldapi.ErrNotFound))
	f.api.On("GetTask", ctx, int64(2)).Return(&domain.Task{ID: 2, Status: domain.StatusDone}, nil)

	_, err := f.svc.Load(ctx, 1)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = f.svc.Load(ctx, 2)
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 3, Status: domain.StatusDraft}))
	f.api.On("UpdateTask", ctx, mock.Anything).Return(&domain.Task{ID: 3, Status: domain.StatusDraft}, nil)
	_, err := f.svc.Save(ctx)
	require.NoError(t, err)

	f.api.On("DeleteTask", ctx, int64(3)).Return(nil).Once()

	require.NoError(t, f.svc.Discard(ctx, true))
	assert.Equal(t, taskform.InitialState(), f.form.State())
	assert.Nil(t, f.cached(t))
	f.api.AssertExpectations(t)
}

func TestDiscard_LocalOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{ClientName: ptr.Ptr("Иванов")}})

	require.NoError(t, f.svc.Discard(ctx, false))
	assert.Equal(t, taskform.InitialState(), f.form.State())
	f.api.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 5, Status: domain.StatusDraft, Description: "кран"}))
	f.api.On("UpdateTask", ctx, mock.Anything).Return(&domain.Task{ID: 5, Status: domain.StatusDraft}, nil).Once()
	_, err := f.svc.Save(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.Forget(ctx, 6))
	assert.Equal(t, int64(5), f.form.State().ID)
	assert.NotNil(t, f.cached(t))

	require.NoError(t, f.svc.Forget(ctx, 5))
	assert.Equal(t, taskform.InitialState(), f.form.State())
	assert.Nil(t, f.cached(t))
}

func TestForget_CacheOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.form.Load(taskform.FromTask(domain.Task{ID: 5, Status: domain.StatusDraft}))
	f.api.On("UpdateTask", ctx, mock.Anything).Return(&domain.Task{ID: 5, Status: domain.StatusDraft}, nil).Once()
	_, err := f.svc.Save(ctx)
	require.NoError(t, err)

	f.form.Load(taskform.FromTask(domain.Task{ID: 8, Status: domain.StatusNew}))

	require.NoError(t, f.svc.Forget(ctx, 5))
	assert.Equal(t, int64(8), f.form.State().ID)
	assert.Nil(t, f.cached(t))
}
