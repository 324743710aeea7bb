package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
)

// Manager единственный владелец сессии приложения
// Инициализируется при старте (Init), очищается при выходе (Logout)
type Manager struct {
	store        KVStore
	auth         AuthClient
	timeProvider TimeProvider
	logger       Logger

	mu      sync.RWMutex
	current *Session
}

// NewManager создает менеджер сессии
func NewManager(store KVStore, auth AuthClient, logger Logger) *Manager {
	return &Manager{
		store:        store,
		auth:         auth,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Init восстанавливает сессию из локального хранилища
// Отсутствие сохраненного токена не ошибка: пользователь просто не вошел
func (m *Manager) Init(ctx context.Context) error {
	values, err := m.store.GetMany(ctx, domain.SessionKeys...)
	if err != nil {
		m.logger.Error("Session.Init: failed to read store: %v", err)
		return fmt.Errorf("%w: read session: %v", ErrInternal, err)
	}

	token := values[domain.KeyUserToken]
	if token == "" {
		m.logger.Info("Session.Init: no saved session")
		return nil
	}

	userID, err := strconv.ParseInt(values[domain.KeyUserID], 10, 64)
	if err != nil {
		m.logger.Warn("Session.Init: invalid saved user id %q, treating as 0", values[domain.KeyUserID])
		userID = 0
	}

	s := &Session{
		Token:     token,
		UserID:    userID,
		Username:  values[domain.KeyUsername],
		Position:  values[domain.KeyPosition],
		ExpiresAt: tokenExpiry(token),
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if s.Expired(m.timeProvider.Now()) {
		m.logger.Warn("Session.Init: saved session for user=%s has expired", s.Username)
	} else {
		m.logger.Info("Session.Init: restored session for user=%s, user_id=%d", s.Username, s.UserID)
	}
	return nil
}

// Login авторизует пользователя и сохраняет сессию
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logger.Warn("Session.Login: login failed for user=%s: %v", username, err)
		return nil, err
	}

	return m.establish(ctx, resp, username)
}

// Register регистрирует пользователя
// Если сервер не вернул токен, выполняется обычный вход с теми же данными
func (m *Manager) Register(ctx context.Context, req fieldapi.RegisterRequest) (*Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		m.logger.Warn("Session.Register: register failed for user=%s: %v", req.Username, err)
		return nil, err
	}
	if resp.Token == "" {
		return m.Login(ctx, req.Username, req.Password)
	}

	return m.establish(ctx, resp, req.Username)
}

// Logout очищает сессию и локальный черновик
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	keys := append(append([]string{}, domain.SessionKeys...), domain.KeyTaskFormData)
	if err := m.store.Delete(ctx, keys...); err != nil {
		m.logger.Error("Session.Logout: failed to clear store: %v", err)
		return fmt.Errorf("%w: clear session: %v", ErrInternal, err)
	}

	m.logger.Info("Session.Logout: session cleared")
	return nil
}

// Current возвращает текущую сессию
func (m *Manager) Current() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNotAuthenticated
	}
	if m.current.Expired(m.timeProvider.Now()) {
		return nil, ErrSessionExpired
	}
	s := *m.current
	return &s, nil
}

// Token возвращает токен для запросов к API, пустая строка без действующей сессии
func (m *Manager) Token() string {
	s, err := m.Current()
	if err != nil {
		return ""
	}
	return s.Token
}

func (m *Manager) establish(ctx context.Context, resp *fieldapi.LoginResponse, username string) (*Session, error) {
	if resp.Username != "" {
		username = resp.Username
	}
	s := &Session{
		Token:     resp.Token,
		UserID:    resp.UserID,
		Username:  username,
		Position:  resp.Position,
		ExpiresAt: tokenExpiry(resp.Token),
	}

	err := m.store.SetMany(ctx, map[string]string{
		domain.KeyUserToken: s.Token,
		domain.KeyUserID:    strconv.FormatInt(s.UserID, 10),
		domain.KeyUsername:  s.Username,
		domain.KeyPosition:  s.Position,
	})
	if err != nil {
		m.logger.Error("Session: failed to persist session for user=%s: %v", username, err)
		return nil, fmt.Errorf("%w: persist session: %v", ErrInternal, err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.logger.Info("Session: user=%s, user_id=%d signed in", s.Username, s.UserID)
	out := *s
	return &out, nil
}

// tokenExpiry достает exp из JWT без проверки подписи: подпись проверяет сервер
// Для непрозрачных токенов возвращает nil
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}

// IsAuthError проверяет, что ошибка означает отсутствие действующей сессии
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, fieldapi.ErrUnauthorized)
}
