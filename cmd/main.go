package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calendarHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/calendar"
	catalogHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/catalog"
	draftsHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/drafts"
	entitiesHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/entities"
	feedHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/feed"
	formHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/form"
	sessionHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/session"
	tasksHandler "github.com/m04kA/SMC-FieldService/internal/api/handlers/tasks"
	"github.com/m04kA/SMC-FieldService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldService/internal/config"
	"github.com/m04kA/SMC-FieldService/internal/domain"
	kvRepo "github.com/m04kA/SMC-FieldService/internal/infra/storage/kv"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	draftsService "github.com/m04kA/SMC-FieldService/internal/service/drafts"
	"github.com/m04kA/SMC-FieldService/internal/service/entitylist"
	sessionService "github.com/m04kA/SMC-FieldService/internal/service/session"
	calendarUC "github.com/m04kA/SMC-FieldService/internal/usecase/calendar"
	changeStatusUC "github.com/m04kA/SMC-FieldService/internal/usecase/change_status"
	feedUC "github.com/m04kA/SMC-FieldService/internal/usecase/feed"
	selectionUC "github.com/m04kA/SMC-FieldService/internal/usecase/selection"
	submitTaskUC "github.com/m04kA/SMC-FieldService/internal/usecase/submit_task"
	"github.com/m04kA/SMC-FieldService/internal/usecase/taskform"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
	"github.com/m04kA/SMC-FieldService/pkg/metrics"
)

const defaultConfigPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-FieldService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики собираются всегда, наружу отдаются только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}

	// Подключаемся к локальному хранилищу
	db, err := sql.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Storage.MaxOpenConns)

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCancel()

	if err := db.PingContext(initCtx); err != nil {
		log.Fatal("Failed to ping storage: %v", err)
	}

	store := kvRepo.NewRepository(db, cfg.Storage.Driver)
	if err := store.Init(initCtx); err != nil {
		log.Fatal("Failed to initialize storage schema: %v", err)
	}
	log.Info("Local storage ready (driver=%s)", cfg.Storage.Driver)

	// Клиент берет токен из сессии, сессия входит через клиент
	var session *sessionService.Manager
	apiClient := fieldapi.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		log,
		fieldapi.WithTokenSource(tokenSourceFunc(func() string { return session.Token() })),
		fieldapi.WithObserver(metricsCollector),
		fieldapi.WithRetry(fieldapi.RetryPolicy{
			MaxAttempts:     cfg.API.RetryMaxAttempts,
			InitialInterval: time.Duration(cfg.API.RetryInitialDelay) * time.Millisecond,
			MaxElapsed:      time.Duration(cfg.API.RetryMaxElapsedSec) * time.Second,
		}),
	)
	session = sessionService.NewManager(store, apiClient, log)
	log.Info("API client initialized (base_url=%s, timeout=%ds)", cfg.API.BaseURL, cfg.API.Timeout)

	if err := session.Init(initCtx); err != nil {
		log.Fatal("Failed to restore session: %v", err)
	}

	// Инициализируем сервисы и use cases
	form := taskform.NewStore()
	drafts := draftsService.NewService(store, apiClient, form, log)

	clients := entitylist.NewClients(apiClient, log)
	employees := entitylist.NewEmployees(apiClient, log)
	inventory := entitylist.NewInventory(apiClient, log)

	selectionUseCase := selectionUC.NewUseCase(form, apiClient, log)
	submitUseCase := submitTaskUC.NewUseCase(form, apiClient, apiClient, drafts, metricsCollector, log)
	calendarUseCase := calendarUC.NewUseCase(apiClient, log)
	feedUseCase := feedUC.NewUseCase(apiClient, feedUC.NewEngine(apiClient, cfg.Feed.ParticipantConcurrency), log)
	changeStatusUseCase := changeStatusUC.NewUseCase(apiClient, apiClient, drafts, log)

	// Инициализируем handlers
	sessionH := sessionHandler.NewHandler(session, log)
	formH := formHandler.NewHandler(form, selectionUseCase, submitUseCase, log)
	draftsH := draftsHandler.NewHandler(drafts, log)
	calendarH := calendarHandler.NewHandler(calendarUseCase, log)
	feedH := feedHandler.NewHandler(feedUseCase, log)
	tasksH := tasksHandler.NewHandler(changeStatusUseCase, log)
	catalogH := catalogHandler.NewHandler(apiClient, log)
	clientsH := entitiesHandler.NewHandler[domain.Client]("clients", clients, func(c domain.Client, id int64) domain.Client {
		c.ID = id
		return c
	}, log)
	employeesH := entitiesHandler.NewHandler[domain.Employee]("employees", employees, func(e domain.Employee, id int64) domain.Employee {
		e.ID = id
		return e
	}, log)
	inventoryH := entitiesHandler.NewHandler[domain.InventoryItem]("inventory", inventory, func(i domain.InventoryItem, id int64) domain.InventoryItem {
		i.ID = id
		return i
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (без сессии)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	api.HandleFunc("/session/login", sessionH.Login).Methods(http.MethodPost)
	api.HandleFunc("/session/register", sessionH.Register).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionH.Current).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionH.Logout).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют действующей сессии)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(session))

	// --- Форма задачи ---
	protected.HandleFunc("/form", formH.State).Methods(http.MethodGet)
	protected.HandleFunc("/form/actions", formH.Dispatch).Methods(http.MethodPost)
	protected.HandleFunc("/form/inventory", formH.Inventory).Methods(http.MethodPost)
	protected.HandleFunc("/form/submit", formH.Submit).Methods(http.MethodPost)

	// --- Черновики ---
	protected.HandleFunc("/drafts", draftsH.Save).Methods(http.MethodPost)
	protected.HandleFunc("/drafts", draftsH.Discard).Methods(http.MethodDelete)
	protected.HandleFunc("/drafts/pending", draftsH.Pending).Methods(http.MethodGet)
	protected.HandleFunc("/drafts/reconcile", draftsH.Reconcile).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{taskId:[0-9]+}", draftsH.Load).Methods(http.MethodGet)

	// --- Календарь и лента ---
	protected.HandleFunc("/calendar", calendarH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/feed", feedH.Handle).Methods(http.MethodPost)

	// --- Жизненный цикл задачи ---
	protected.HandleFunc("/tasks/{taskId}/start", tasksH.Start).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{taskId}/complete", tasksH.Complete).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{taskId}/cancel", tasksH.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{taskId}", tasksH.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/tasks/{taskId}/photos", tasksH.Photos).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{taskId}/photos", tasksH.UploadPhoto).Methods(http.MethodPost)

	// --- Справочники формы ---
	protected.HandleFunc("/catalog/services", catalogH.Services).Methods(http.MethodGet)
	protected.HandleFunc("/catalog/payment-methods", catalogH.PaymentMethods).Methods(http.MethodGet)
	protected.HandleFunc("/catalog/responsibles", catalogH.Responsibles).Methods(http.MethodGet)

	// --- Клиенты, сотрудники, склад ---
	protected.HandleFunc("/clients", clientsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/clients", clientsH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id}", clientsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", clientsH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/clients/{id}", clientsH.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/employees", employeesH.List).Methods(http.MethodGet)
	protected.HandleFunc("/employees", employeesH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{id}", employeesH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}", employeesH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{id}", employeesH.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/inventory", inventoryH.List).Methods(http.MethodGet)
	protected.HandleFunc("/inventory", inventoryH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/inventory/{id}", inventoryH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/inventory/{id}", inventoryH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/inventory/{id}", inventoryH.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Черновик, сохраненный без связи, досылается в фоне
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	go reconcilePendingDraft(bgCtx, drafts, log)

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	bgCancel()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// tokenSourceFunc адаптер функции к fieldapi.TokenSource
type tokenSourceFunc func() string

func (f tokenSourceFunc) Token() string { return f() }

func reconcilePendingDraft(ctx context.Context, drafts *draftsService.Service, log *logger.Logger) {
	if _, err := drafts.Pending(ctx); err != nil {
		return
	}

	rec, err := drafts.Reconcile(ctx)
	if err != nil {
		log.Warn("Startup reconcile: pending draft not synced: %v", err)
		return
	}
	log.Info("Startup reconcile: draft id=%d synced", rec.TaskID)
}
