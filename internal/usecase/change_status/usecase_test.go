package change_status

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
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

func (m *mockTasks) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTasks) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTasks) CompleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTasks) ConsumeInventory(ctx context.Context, id int64, usage []domain.InventoryUsage) error {
	return m.Called(ctx, id, usage).Error(0)
}

func (m *mockTasks) ListTaskPhotos(ctx context.Context, id int64) ([]domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *mockTasks) UploadTaskPhoto(ctx context.Context, id int64, filename string, content io.Reader) (*domain.Photo, error) {
	args := m.Called(ctx, id, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

type fakeDrafts struct {
	forgotten []int64
}

func (f *fakeDrafts) Forget(_ context.Context, taskID int64) error {
	f.forgotten = append(f.forgotten, taskID)
	return nil
}

func newUseCase() (*UseCase, *mockTasks, *mockInventory) {
	uc, tasks, inventory, _ := newUseCaseWithDrafts()
	return uc, tasks, inventory
}

func newUseCaseWithDrafts() (*UseCase, *mockTasks, *mockInventory, *fakeDrafts) {
	tasks := &mockTasks{}
	inventory := &mockInventory{}
	drafts := &fakeDrafts{}
	return NewUseCase(tasks, inventory, drafts, logger.NewNop()), tasks, inventory, drafts
}

func TestStartWork_Success(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(5)).Return(&domain.Task{ID: 5, Status: domain.StatusNew}, nil)
	tasks.On("UpdateTask", ctx, domain.Task{ID: 5, Status: domain.StatusInProgress}).
		Return(&domain.Task{ID: 5, Status: domain.StatusInProgress}, nil)

	task, err := uc.StartWork(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	tasks.AssertExpectations(t)
}

func TestStartWork_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(5)).Return(&domain.Task{ID: 5, Status: domain.StatusDraft}, nil)

	_, err := uc.StartWork(ctx, 5)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	tasks.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything)
}

func TestStartWork_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(9)).Return(nil, fmt.Errorf("%w: task 9", fieldapi.ErrNotFound))

	_, err := uc.StartWork(ctx, 9)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCancel_DoneIsTerminal(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(3)).Return(&domain.Task{ID: 3, Status: domain.StatusDone}, nil)

	_, err := uc.Cancel(ctx, 3)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestCancel_Draft(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(3)).Return(&domain.Task{ID: 3, Status: domain.StatusDraft}, nil)
	tasks.On("UpdateTask", ctx, domain.Task{ID: 3, Status: domain.StatusCancelled}).
		Return(&domain.Task{ID: 3, Status: domain.StatusCancelled}, nil)

	task, err := uc.Cancel(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, task.Status)
}

func TestComplete_ConsumesThenCompletes(t *testing.T) {
	ctx := context.Background()
	uc, tasks, inventory := newUseCase()

	usage := []domain.InventoryUsage{{ItemID: 1, Quantity: 2}}
	var order []string

	tasks.On("GetTask", ctx, int64(7)).Return(&domain.Task{ID: 7, Status: domain.StatusInProgress}, nil)
	inventory.On("ListInventory", ctx).Return([]domain.InventoryItem{{ID: 1, Quantity: 5}}, nil)
	tasks.On("ConsumeInventory", ctx, int64(7), usage).Return(nil).
		Run(func(mock.Arguments) { order = append(order, "consume") })
	tasks.On("CompleteTask", ctx, int64(7)).Return(nil).
		Run(func(mock.Arguments) { order = append(order, "complete") })

	task, err := uc.Complete(ctx, CompleteRequest{TaskID: 7, Inventory: usage})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)
	assert.Equal(t, usage, task.Inventory)
	assert.Equal(t, []string{"consume", "complete"}, order)
}

func TestComplete_WithoutInventory(t *testing.T) {
	ctx := context.Background()
	uc, tasks, inventory := newUseCase()

	tasks.On("GetTask", ctx, int64(7)).Return(&domain.Task{ID: 7, Status: domain.StatusInProgress}, nil)
	tasks.On("CompleteTask", ctx, int64(7)).Return(nil)

	_, err := uc.Complete(ctx, CompleteRequest{TaskID: 7})
	require.NoError(t, err)
	inventory.AssertNotCalled(t, "ListInventory", mock.Anything)
	tasks.AssertNotCalled(t, "ConsumeInventory", mock.Anything, mock.Anything, mock.Anything)
}

func TestComplete_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	uc, tasks, inventory := newUseCase()

	tasks.On("GetTask", ctx, int64(7)).Return(&domain.Task{ID: 7, Status: domain.StatusInProgress}, nil)
	inventory.On("ListInventory", ctx).Return([]domain.InventoryItem{{ID: 1, Quantity: 1}}, nil)

	_, err := uc.Complete(ctx, CompleteRequest{TaskID: 7, Inventory: []domain.InventoryUsage{{ItemID: 1, Quantity: 2}}})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	tasks.AssertNotCalled(t, "ConsumeInventory", mock.Anything, mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything)
}

func TestComplete_RequiresInProgress(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("GetTask", ctx, int64(7)).Return(&domain.Task{ID: 7, Status: domain.StatusNew}, nil)

	_, err := uc.Complete(ctx, CompleteRequest{TaskID: 7})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestValidateConsumption(t *testing.T) {
	items := []domain.InventoryItem{{ID: 1, Quantity: 3}, {ID: 2, Quantity: 0.5}}

	tests := []struct {
		name    string
		usage   []domain.InventoryUsage
		wantErr error
	}{
		{name: "within stock", usage: []domain.InventoryUsage{{ItemID: 1, Quantity: 3}, {ItemID: 2, Quantity: 0.5}}},
		{name: "zero is fine", usage: []domain.InventoryUsage{{ItemID: 1, Quantity: 0}}},
		{name: "over stock", usage: []domain.InventoryUsage{{ItemID: 2, Quantity: 1}}, wantErr: ErrInsufficientStock},
		{name: "unknown item", usage: []domain.InventoryUsage{{ItemID: 3, Quantity: 1}}, wantErr: ErrInsufficientStock},
		{name: "negative", usage: []domain.InventoryUsage{{ItemID: 1, Quantity: -1}}, wantErr: ErrInvalidInput},
		{name: "duplicate", usage: []domain.InventoryUsage{{ItemID: 1, Quantity: 1}, {ItemID: 1, Quantity: 1}}, wantErr: ErrInvalidInput},
		{name: "missing id", usage: []domain.InventoryUsage{{Quantity: 1}}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConsumption(tt.usage, items)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("DeleteTask", ctx, int64(1)).Return(nil)
	tasks.On("DeleteTask", ctx, int64(2)).Return(fmt.Errorf("%w: task 2", fieldapi.ErrNotFound))

	assert.NoError(t, uc.Delete(ctx, 1))
	assert.ErrorIs(t, uc.Delete(ctx, 2), ErrTaskNotFound)
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	content := strings.NewReader("jpeg")

	t.Run("in progress task", func(t *testing.T) {
		uc, tasks, _ := newUseCase()
		tasks.On("GetTask", ctx, int64(4)).Return(&domain.Task{ID: 4, Status: domain.StatusInProgress}, nil)
		tasks.On("UploadTaskPhoto", ctx, int64(4), "report.JPG", content).Return(&domain.Photo{ID: 1, TaskID: 4}, nil)

		photo, err := uc.UploadPhoto(ctx, UploadPhotoRequest{TaskID: 4, Filename: "report.JPG", Size: 4, Content: content})
		require.NoError(t, err)
		assert.Equal(t, int64(4), photo.TaskID)
	})

	t.Run("new task", func(t *testing.T) {
		uc, tasks, _ := newUseCase()
		tasks.On("GetTask", ctx, int64(4)).Return(&domain.Task{ID: 4, Status: domain.StatusNew}, nil)

		_, err := uc.UploadPhoto(ctx, UploadPhotoRequest{TaskID: 4, Filename: "report.jpg", Size: 4, Content: content})
		assert.ErrorIs(t, err, ErrPhotosNotAllowed)
	})

	t.Run("too large", func(t *testing.T) {
		uc, tasks, _ := newUseCase()

		_, err := uc.UploadPhoto(ctx, UploadPhotoRequest{TaskID: 4, Filename: "report.jpg", Size: domain.MaxPhotoSizeBytes + 1, Content: content})
		assert.ErrorIs(t, err, ErrPhotoTooLarge)
		tasks.AssertNotCalled(t, "GetTask", mock.Anything, mock.Anything)
	})

	t.Run("unsupported type", func(t *testing.T) {
		uc, _, _ := newUseCase()

		_, err := uc.UploadPhoto(ctx, UploadPhotoRequest{TaskID: 4, Filename: "report.pdf", Size: 4, Content: content})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPhotos(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _ := newUseCase()

	tasks.On("ListTaskPhotos", ctx, int64(4)).Return([]domain.Photo{{ID: 1}, {ID: 2}}, nil)

	photos, err := uc.Photos(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, photos, 2)
}

func TestOpenFormResetAfterTerminalActions(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _, drafts := newUseCaseWithDrafts()

	tasks.On("DeleteTask", ctx, int64(3)).Return(nil).Once()
	tasks.On("GetTask", ctx, int64(4)).Return(&domain.Task{ID: 4, Status: domain.StatusNew}, nil).Once()
	tasks.On("UpdateTask", ctx, domain.Task{ID: 4, Status: domain.StatusCancelled}).
		Return(&domain.Task{ID: 4, Status: domain.StatusCancelled}, nil).Once()
	tasks.On("GetTask", ctx, int64(5)).Return(&domain.Task{ID: 5, Status: domain.StatusInProgress}, nil).Once()
	tasks.On("CompleteTask", ctx, int64(5)).Return(nil).Once()

	require.NoError(t, uc.Delete(ctx, 3))
	_, err := uc.Cancel(ctx, 4)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, CompleteRequest{TaskID: 5})
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 4, 5}, drafts.forgotten)
}

func TestOpenFormKeptOnFailureAndStart(t *testing.T) {
	ctx := context.Background()
	uc, tasks, _, drafts := newUseCaseWithDrafts()

	tasks.On("DeleteTask", ctx, int64(3)).Return(fmt.Errorf("%w: boom", fieldapi.ErrServer)).Once()
	tasks.On("GetTask", ctx, int64(4)).Return(&domain.Task{ID: 4, Status: domain.StatusNew}, nil).Once()
	tasks.On("UpdateTask", ctx, domain.Task{ID: 4, Status: domain.StatusInProgress}).
		Return(&domain.Task{ID: 4, Status: domain.StatusInProgress}, nil).Once()

	assert.Error(t, uc.Delete(ctx, 3))
	_, err := uc.StartWork(ctx, 4)
	require.NoError(t, err)

	assert.Empty(t, drafts.forgotten)
}
