package fieldapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	headerAuthorization  = "Authorization"
	headerIdempotencyKey = "Idempotency-Key"
	contentTypeJSON      = "application/json"

	maxErrorBodyBytes = 4 << 10
)

// Client клиент удаленного REST API (задачи, клиенты, сотрудники, склад, справочники, авторизация)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	tokens     TokenSource
	observer   Observer
	retry      RetryPolicy
	newKey     func() string
}

// RetryPolicy повторные попытки для идемпотентных чтений (GET)
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxElapsed      time.Duration
}

// Option настройка клиента
type Option func(*Client)

// WithTokenSource задает источник токена для заголовка Authorization
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithObserver задает сборщик метрик запросов
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithRetry задает политику повторов для GET
func WithRetry(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithHTTPClient подменяет http.Client (например, в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:    log,
		retry:  RetryPolicy{MaxAttempts: 1},
		newKey: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doJSON выполняет запрос с JSON телом и декодирует JSON ответ в out
// endpoint - шаблон пути для логов и метрик, path - фактический путь
func (c *Client) doJSON(ctx context.Context, method, endpoint, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
	}

	var idempotencyKey string
	if method == http.MethodPost {
		idempotencyKey = c.newKey()
	}

	op := func() error {
		return c.roundTrip(ctx, method, endpoint, path, body, contentTypeJSON, idempotencyKey, out)
	}

	if method == http.MethodGet {
		return c.withRetry(ctx, method, endpoint, op)
	}
	return op()
}

func (c *Client) roundTrip(
	ctx context.Context,
	method, endpoint, path string,
	body []byte,
	contentType string,
	idempotencyKey string,
	out interface{},
) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}
	}
	if idempotencyKey != "" {
		req.Header.Set(headerIdempotencyKey, idempotencyKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, endpoint, 0, time.Since(start))
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()
	c.observe(method, endpoint, resp.StatusCode, time.Since(start))

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: status %d", ErrUnauthorized, method, endpoint, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	default:
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(errBody)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: failed to decode response: %v", ErrInvalidResponse, method, endpoint, err)
	}
	return nil
}

// withRetry повторяет операцию с экспоненциальной задержкой
// Повторяются только транспортные ошибки и ответы 5xx
func (c *Client) withRetry(ctx context.Context, method, endpoint string, op func() error) error {
	if c.retry.MaxAttempts <= 1 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	if c.retry.InitialInterval > 0 {
		b.InitialInterval = c.retry.InitialInterval
	}
	if c.retry.MaxElapsed > 0 {
		b.MaxElapsedTime = c.retry.MaxElapsed
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retry.MaxAttempts-1)), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err == nil || isRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy, func(err error, wait time.Duration) {
		c.log.Warn("fieldapi: %s %s failed, retrying in %s: %v", method, endpoint, wait, err)
	})
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}
	return false
}

func (c *Client) observe(method, endpoint string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveAPIRequest(method, endpoint, status, d)
	}
}
