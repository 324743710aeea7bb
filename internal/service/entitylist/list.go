package entitylist

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// List постраничный редактируемый список сущностей
// Изменения применяются локально сразу и откатываются, если сервер их не принял
type List[T any] struct {
	source Source[T]
	schema Schema[T]
	logger Logger

	mu     sync.RWMutex
	items  []T
	loaded bool
}

// New создает список
func New[T any](source Source[T], schema Schema[T], logger Logger) *List[T] {
	return &List[T]{
		source: source,
		schema: schema,
		logger: logger,
	}
}

// Refresh перезагружает список с сервера
func (l *List[T]) Refresh(ctx context.Context) error {
	items, err := l.source.List(ctx)
	if err != nil {
		l.logger.Error("%s.Refresh: failed to list: %v", l.schema.Name, err)
		return fmt.Errorf("%w: list %s: %w", ErrInternal, l.schema.Name, err)
	}

	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.loaded = true
	l.mu.Unlock()

	l.logger.Info("%s.Refresh: %d items loaded", l.schema.Name, len(items))
	return nil
}

// Page возвращает страницу с учетом поиска; при первом обращении загружает список
func (l *List[T]) Page(ctx context.Context, page, size int, search string) (*Page[T], error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 || size < 1 || size > MaxPageSize {
		return nil, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPage, page, size)
	}

	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	l.mu.RLock()
	filtered := l.filter(search)
	l.mu.RUnlock()

	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	return &Page[T]{
		Items: append([]T{}, filtered[start:end]...),
		Page:  page,
		Size:  size,
		Total: len(filtered),
		Pages: (len(filtered) + size - 1) / size,
	}, nil
}

// Get возвращает сущность из загруженного списка
func (l *List[T]) Get(id int64) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexOf(id); i >= 0 {
		return l.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create создает сущность на сервере и добавляет ее в конец списка
// ID известен только после ответа сервера, поэтому без оптимистичной вставки
func (l *List[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := l.ensureLoaded(ctx); err != nil {
		return zero, err
	}

	created, err := l.source.Create(ctx, item)
	if err != nil {
		l.logger.Error("%s.Create: failed to create: %v", l.schema.Name, err)
		return zero, fmt.Errorf("%w: create %s: %w", ErrInternal, l.schema.Name, err)
	}

	l.mu.Lock()
	if i := l.indexOf(l.schema.Key(created)); i >= 0 {
		l.items[i] = created
	} else {
		l.items = append(l.items, created)
	}
	l.mu.Unlock()

	l.logger.Info("%s.Create: id=%d created", l.schema.Name, l.schema.Key(created))
	return created, nil
}

// Edit оптимистично заменяет сущность и отправляет изменение на сервер
// При ошибке сервера прежнее значение возвращается в список
func (l *List[T]) Edit(ctx context.Context, item T) (T, error) {
	var zero T
	id := l.schema.Key(item)
	if err := l.ensureLoaded(ctx); err != nil {
		return zero, err
	}

	// 1. Локальная замена
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return zero, ErrNotFound
	}
	previous := l.items[i]
	l.items[i] = item
	l.mu.Unlock()

	// 2. Подтверждение сервером
	saved, err := l.source.Update(ctx, item)
	if err != nil {
		l.mu.Lock()
		if j := l.indexOf(id); j >= 0 {
			l.items[j] = previous
		}
		l.mu.Unlock()

		l.logger.Warn("%s.Edit: id=%d rejected, rolled back: %v", l.schema.Name, id, err)
		return zero, fmt.Errorf("%w: update %s id=%d: %w", ErrInternal, l.schema.Name, id, err)
	}

	// 3. Версия сервера главнее локальной
	l.mu.Lock()
	if j := l.indexOf(id); j >= 0 {
		l.items[j] = saved
	}
	l.mu.Unlock()

	l.logger.Info("%s.Edit: id=%d saved", l.schema.Name, id)
	return saved, nil
}

// Delete оптимистично убирает сущность и удаляет ее на сервере
// При ошибке сущность возвращается на прежнее место
func (l *List[T]) Delete(ctx context.Context, id int64) error {
	if err := l.ensureLoaded(ctx); err != nil {
		return err
	}

	// 1. Локальное удаление
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return ErrNotFound
	}
	removed := l.items[i]
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	l.mu.Unlock()

	// 2. Подтверждение сервером
	if err := l.source.Delete(ctx, id); err != nil {
		l.mu.Lock()
		pos := i
		if pos > len(l.items) {
			pos = len(l.items)
		}
		restored := make([]T, 0, len(l.items)+1)
		restored = append(restored, l.items[:pos]...)
		restored = append(restored, removed)
		restored = append(restored, l.items[pos:]...)
		l.items = restored
		l.mu.Unlock()

		l.logger.Warn("%s.Delete: id=%d rejected, rolled back: %v", l.schema.Name, id, err)
		return fmt.Errorf("%w: delete %s id=%d: %w", ErrInternal, l.schema.Name, id, err)
	}

	l.logger.Info("%s.Delete: id=%d deleted", l.schema.Name, id)
	return nil
}

func (l *List[T]) ensureLoaded(ctx context.Context) error {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return nil
	}
	return l.Refresh(ctx)
}

// filter вызывается под блокировкой
func (l *List[T]) filter(search string) []T {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return append([]T{}, l.items...)
	}
	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if strings.Contains(strings.ToLower(l.schema.SearchText(item)), term) {
			out = append(out, item)
		}
	}
	return out
}

// indexOf вызывается под блокировкой
func (l *List[T]) indexOf(id int64) int {
	for i, item := range l.items {
		if l.schema.Key(item) == id {
			return i
		}
	}
	return -1
}
