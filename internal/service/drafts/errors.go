package drafts

import "errors"

var (
	// ErrSavedOffline возвращается, когда черновик сохранен только локально
	// Запись будет отправлена на сервер при Reconcile
	ErrSavedOffline = errors.New("drafts: saved locally, server unreachable")

	// ErrNoPendingDraft возвращается, когда нет черновика, ожидающего синхронизации
	ErrNoPendingDraft = errors.New("drafts: no pending draft")

	// ErrDraftSuperseded возвращается, когда на сервере черновик уже не черновик или удален
	// Локальная копия при этом отбрасывается: сервер главнее
	ErrDraftSuperseded = errors.New("drafts: server copy is no longer a draft")

	// ErrNotDraftable возвращается, когда форму нельзя сохранить как черновик
	ErrNotDraftable = errors.New("drafts: task cannot be saved as draft")

	// ErrNotEditable возвращается при попытке открыть в форме завершенную задачу
	ErrNotEditable = errors.New("drafts: task cannot be edited")

	// ErrTaskNotFound возвращается, когда задачи нет ни на сервере, ни в кеше
	ErrTaskNotFound = errors.New("drafts: task not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts: internal error")
)
