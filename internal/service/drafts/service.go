package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/infra/storage/kv"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/internal/service/drafts/models"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
	"github.com/m04kA/SMC-FieldService/pkg/ptr"
)

// Service единый механизм черновиков
// Источник истины - серверный черновик, локальная запись только офлайн-кеш
type Service struct {
	store        KVStore
	api          TaskClient
	form         FormStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store KVStore, api TaskClient, form FormStore, logger Logger) *Service {
	return &Service{
		store:        store,
		api:          api,
		form:         form,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Save сохраняет текущую форму как черновик
// При недоступности сервера запись остается в кеше с synced=false и возвращается ErrSavedOffline
func (s *Service) Save(ctx context.Context) (*models.Record, error) {
	state := s.form.State()
	s.logger.Info("Drafts.Save: task id=%d, status=%q", state.ID, state.Status)

	// 1. Проверяем, что форму можно сохранить черновиком
	if _, err := domain.Transition(state.Status, domain.StatusDraft); err != nil {
		s.logger.Warn("Drafts.Save: task id=%d is not draftable: %v", state.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrNotDraftable, err)
	}
	state.Status = domain.StatusDraft

	// 2. Отправляем на сервер
	saved, err := s.push(ctx, state)
	if err != nil {
		if !errors.Is(err, fieldapi.ErrNetwork) {
			s.logger.Error("Drafts.Save: server rejected draft id=%d: %v", state.ID, err)
			return nil, fmt.Errorf("%w: save draft: %w", ErrInternal, err)
		}

		// 3. Сервер недоступен: кешируем локально
		rec := &models.Record{Form: state, TaskID: state.ID, Synced: false, SavedAt: s.timeProvider.Now()}
		if cacheErr := s.writeCache(ctx, rec); cacheErr != nil {
			return nil, cacheErr
		}
		s.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{Status: ptr.Ptr(domain.StatusDraft)}})
		s.logger.Warn("Drafts.Save: server unreachable, draft id=%d cached locally", state.ID)
		return rec, fmt.Errorf("%w: %w", ErrSavedOffline, err)
	}

	// 4. Кешируем подтвержденную версию и проставляем ID в форму
	state.ID = saved.ID
	rec := &models.Record{Form: state, TaskID: saved.ID, Synced: true, SavedAt: s.timeProvider.Now()}
	if err := s.writeCache(ctx, rec); err != nil {
		return nil, err
	}
	s.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{
		ID:     ptr.Ptr(saved.ID),
		Status: ptr.Ptr(domain.StatusDraft),
	}})

	s.logger.Info("Drafts.Save: draft id=%d saved", saved.ID)
	return rec, nil
}

// Load загружает задачу с сервера в форму (серверный черновик или редактируемая задача)
// Кеш используется только при недоступности сервера и только для той же задачи
func (s *Service) Load(ctx context.Context, taskID int64) (*models.Record, error) {
	s.logger.Info("Drafts.Load: task id=%d", taskID)

	task, err := s.api.GetTask(ctx, taskID)
	if err != nil {
		switch {
		case errors.Is(err, fieldapi.ErrNotFound):
			s.logger.Warn("Drafts.Load: task id=%d not found", taskID)
			return nil, ErrTaskNotFound
		case errors.Is(err, fieldapi.ErrNetwork):
			cached, cacheErr := s.readCache(ctx)
			if cacheErr != nil {
				return nil, cacheErr
			}
			if cached != nil && cached.TaskID == taskID {
				s.form.Load(cached.Form)
				s.logger.Warn("Drafts.Load: server unreachable, using cached draft id=%d", taskID)
				return cached, nil
			}
		}
		s.logger.Error("Drafts.Load: failed to fetch task id=%d: %v", taskID, err)
		return nil, fmt.Errorf("%w: fetch draft: %w", ErrInternal, err)
	}

	if !task.CanBeEdited() {
		s.logger.Warn("Drafts.Load: task id=%d has terminal status %q", taskID, task.Status)
		return nil, ErrNotEditable
	}

	form := taskform.FromTask(*task)
	s.form.Load(form)

	rec := &models.Record{Form: form, TaskID: task.ID, Synced: true, SavedAt: s.timeProvider.Now()}
	if task.IsDraft() {
		cached, err := s.readCache(ctx)
		if err != nil {
			return nil, err
		}
		if cached != nil && cached.TaskID == task.ID && !cached.Synced {
			s.logger.Warn("Drafts.Load: local changes of draft id=%d replaced by server copy", task.ID)
		}
		if err := s.writeCache(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Pending возвращает черновик, ожидающий отправки на сервер
func (s *Service) Pending(ctx context.Context) (*models.Record, error) {
	rec, err := s.readCache(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Synced {
		return nil, ErrNoPendingDraft
	}
	return rec, nil
}

// Reconcile отправляет офлайн-черновик на сервер
// Если на сервере задача уже не черновик или удалена, локальная копия отбрасывается
func (s *Service) Reconcile(ctx context.Context) (*models.Record, error) {
	// 1. Ищем несинхронизированную запись
	rec, err := s.Pending(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Drafts.Reconcile: pushing draft id=%d saved at %s", rec.TaskID, rec.SavedAt)

	// 2. Сервер главнее: проверяем его копию
	if rec.TaskID != 0 {
		server, err := s.api.GetTask(ctx, rec.TaskID)
		switch {
		case errors.Is(err, fieldapi.ErrNotFound):
			s.dropCache(ctx)
			s.logger.Warn("Drafts.Reconcile: draft id=%d deleted on server, local copy dropped", rec.TaskID)
			return nil, ErrDraftSuperseded
		case err != nil:
			s.logger.Error("Drafts.Reconcile: failed to fetch draft id=%d: %v", rec.TaskID, err)
			return nil, fmt.Errorf("%w: fetch draft: %w", ErrInternal, err)
		case !server.IsDraft():
			s.dropCache(ctx)
			s.logger.Warn("Drafts.Reconcile: task id=%d is %q on server, local copy dropped", rec.TaskID, server.Status)
			return nil, ErrDraftSuperseded
		}
	}

	// 3. Отправляем
	form := rec.Form
	form.ID = rec.TaskID
	form.Status = domain.StatusDraft
	saved, err := s.push(ctx, form)
	if err != nil {
		s.logger.Error("Drafts.Reconcile: failed to push draft id=%d: %v", rec.TaskID, err)
		return nil, fmt.Errorf("%w: push draft: %w", ErrInternal, err)
	}

	// 4. Обновляем кеш и форму, если в ней открыт этот же черновик
	previousID := rec.TaskID
	form.ID = saved.ID
	synced := &models.Record{Form: form, TaskID: saved.ID, Synced: true, SavedAt: s.timeProvider.Now()}
	if err := s.writeCache(ctx, synced); err != nil {
		return nil, err
	}

	current := s.form.State()
	if current.ID == previousID && current.Status == domain.StatusDraft {
		s.form.Dispatch(taskform.UpdateForm{Patch: taskform.Patch{ID: ptr.Ptr(saved.ID)}})
	}

	s.logger.Info("Drafts.Reconcile: draft id=%d synced", saved.ID)
	return synced, nil
}

// Discard сбрасывает форму и локальный кеш
// deleteRemote = true дополнительно удаляет серверный черновик
func (s *Service) Discard(ctx context.Context, deleteRemote bool) error {
	if deleteRemote {
		id, err := s.draftID(ctx)
		if err != nil {
			return err
		}
		if id != 0 {
			err := s.api.DeleteTask(ctx, id)
			if err != nil && !errors.Is(err, fieldapi.ErrNotFound) {
				s.logger.Error("Drafts.Discard: failed to delete draft id=%d: %v", id, err)
				return fmt.Errorf("%w: delete draft: %w", ErrInternal, err)
			}
			s.logger.Info("Drafts.Discard: server draft id=%d deleted", id)
		}
	}

	if err := s.ClearCache(ctx); err != nil {
		return err
	}
	s.form.Dispatch(taskform.ResetForm{})
	return nil
}

// Forget сбрасывает форму и кеш, если в них открыта задача taskID
// Вызывается после удаления, отмены или завершения задачи
func (s *Service) Forget(ctx context.Context, taskID int64) error {
	if s.form.State().ID == taskID {
		s.form.Dispatch(taskform.ResetForm{})
		s.logger.Info("Drafts.Forget: form with task id=%d reset", taskID)
	}

	rec, err := s.readCache(ctx)
	if err != nil {
		return err
	}
	if rec == nil || rec.TaskID != taskID {
		return nil
	}
	return s.ClearCache(ctx)
}

// ClearCache удаляет локальную запись черновика
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.KeyTaskFormData); err != nil {
		s.logger.Error("Drafts: failed to clear cache: %v", err)
		return fmt.Errorf("%w: clear cache: %v", ErrInternal, err)
	}
	return nil
}

// draftID ID серверного черновика: из формы, если в ней открыт черновик, иначе из кеша
func (s *Service) draftID(ctx context.Context) (int64, error) {
	state := s.form.State()
	if state.Status == domain.StatusDraft && state.ID != 0 {
		return state.ID, nil
	}
	rec, err := s.readCache(ctx)
	if err != nil || rec == nil {
		return 0, err
	}
	return rec.TaskID, nil
}

func (s *Service) push(ctx context.Context, state taskform.State) (*domain.Task, error) {
	task := state.ToTask()
	if state.IsNew() {
		return s.api.CreateTask(ctx, task)
	}
	return s.api.UpdateTask(ctx, task)
}

func (s *Service) readCache(ctx context.Context) (*models.Record, error) {
	raw, err := s.store.Get(ctx, domain.KeyTaskFormData)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Drafts: failed to read cache: %v", err)
		return nil, fmt.Errorf("%w: read cache: %v", ErrInternal, err)
	}

	var rec models.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Испорченная запись не должна блокировать работу с формой
		s.logger.Warn("Drafts: corrupted cache entry dropped: %v", err)
		s.dropCache(ctx)
		return nil, nil
	}
	return &rec, nil
}

func (s *Service) writeCache(ctx context.Context, rec *models.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal draft: %v", ErrInternal, err)
	}
	if err := s.store.Set(ctx, domain.KeyTaskFormData, string(raw)); err != nil {
		s.logger.Error("Drafts: failed to write cache: %v", err)
		return fmt.Errorf("%w: write cache: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) dropCache(ctx context.Context) {
	if err := s.store.Delete(ctx, domain.KeyTaskFormData); err != nil {
		s.logger.Error("Drafts: failed to drop cache: %v", err)
	}
}
