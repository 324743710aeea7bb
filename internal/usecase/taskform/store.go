package taskform

import "sync"

// Store хранит единственную редактируемую форму
// Локальный HTTP API обслуживает запросы конкурентно, поэтому доступ под мьютексом
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore создает хранилище с пустой формой
func NewStore() *Store {
	return &Store{state: InitialState()}
}

// Dispatch применяет действие и возвращает новое состояние
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	return s.state.Clone()
}

// State возвращает копию текущего состояния
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Load заменяет форму целиком (загрузка черновика или задачи с сервера)
func (s *Store) Load(state State) State {
	return s.Dispatch(SetForm{Patch: FullPatch(state)})
}
