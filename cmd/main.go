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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveRequestHandler "github.com/taimeline/taimeline-service/internal/api/handlers/approve_request"
	cancelEventHandler "github.com/taimeline/taimeline-service/internal/api/handlers/cancel_event"
	createEventHandler "github.com/taimeline/taimeline-service/internal/api/handlers/create_event"
	createProcedureHandler "github.com/taimeline/taimeline-service/internal/api/handlers/create_procedure"
	createStaffHandler "github.com/taimeline/taimeline-service/internal/api/handlers/create_staff"
	deleteEventHandler "github.com/taimeline/taimeline-service/internal/api/handlers/delete_event"
	deleteProcedureHandler "github.com/taimeline/taimeline-service/internal/api/handlers/delete_procedure"
	deleteStaffHandler "github.com/taimeline/taimeline-service/internal/api/handlers/delete_staff"
	expireRequestsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/expire_requests"
	getAvailableSlotsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/get_available_slots"
	getEventHandler "github.com/taimeline/taimeline-service/internal/api/handlers/get_event"
	getEventsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/get_events"
	getSettingsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/get_settings"
	listProceduresHandler "github.com/taimeline/taimeline-service/internal/api/handlers/list_procedures"
	listRequestsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/list_requests"
	listStaffHandler "github.com/taimeline/taimeline-service/internal/api/handlers/list_staff"
	rejectRequestHandler "github.com/taimeline/taimeline-service/internal/api/handlers/reject_request"
	updateEventStatusHandler "github.com/taimeline/taimeline-service/internal/api/handlers/update_event_status"
	updateProcedureHandler "github.com/taimeline/taimeline-service/internal/api/handlers/update_procedure"
	updateSettingsHandler "github.com/taimeline/taimeline-service/internal/api/handlers/update_settings"
	updateStaffHandler "github.com/taimeline/taimeline-service/internal/api/handlers/update_staff"
	whatsappWebhookHandler "github.com/taimeline/taimeline-service/internal/api/handlers/whatsapp_webhook"
	"github.com/taimeline/taimeline-service/internal/api/middleware"
	"github.com/taimeline/taimeline-service/internal/config"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
	whatsappClient "github.com/taimeline/taimeline-service/internal/integrations/whatsapp"
	eventsService "github.com/taimeline/taimeline-service/internal/service/events"
	proceduresService "github.com/taimeline/taimeline-service/internal/service/procedures"
	requestsService "github.com/taimeline/taimeline-service/internal/service/requests"
	settingsService "github.com/taimeline/taimeline-service/internal/service/settings"
	staffService "github.com/taimeline/taimeline-service/internal/service/staff"
	approveRequestUC "github.com/taimeline/taimeline-service/internal/usecase/approve_request"
	createEventUC "github.com/taimeline/taimeline-service/internal/usecase/create_event"
	expireRequestsUC "github.com/taimeline/taimeline-service/internal/usecase/expire_requests"
	findAvailableSlotsUC "github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
	handleInboundMessageUC "github.com/taimeline/taimeline-service/internal/usecase/handle_inbound_message"
	rejectRequestUC "github.com/taimeline/taimeline-service/internal/usecase/reject_request"
	"github.com/taimeline/taimeline-service/pkg/dbmetrics"
	"github.com/taimeline/taimeline-service/pkg/logger"
	"github.com/taimeline/taimeline-service/pkg/metrics"
	"github.com/taimeline/taimeline-service/pkg/simpletxmanager"
	"github.com/taimeline/taimeline-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting taimeline-service...")
	log.Info("Configuration loaded from config.toml")

	// Бизнес, на который заведен входящий WhatsApp номер
	webhookBusinessID, err := uuid.Parse(cfg.WhatsApp.DefaultBusinessID)
	if err != nil {
		log.Fatal("Invalid whatsapp.default_business_id: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем WhatsApp клиент
	waClient := whatsappClient.NewClient(
		whatsappClient.Config{
			GraphAPIBaseURL:    cfg.WhatsApp.GraphAPIBaseURL,
			PhoneNumberID:      cfg.WhatsApp.PhoneNumberID,
			AccessToken:        cfg.WhatsApp.AccessToken,
			WebhookVerifyToken: cfg.WhatsApp.WebhookVerifyToken,
			BusinessPhone:      cfg.WhatsApp.BusinessPhone,
		},
		time.Duration(cfg.WhatsApp.Timeout)*time.Second,
		log,
	)
	log.Info("WhatsApp client initialized (base_url=%s timeout=%ds)",
		cfg.WhatsApp.GraphAPIBaseURL, cfg.WhatsApp.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		eventRepository     *eventRepo.Repository
		staffRepository     *staffRepo.Repository
		procedureRepository *procedureRepo.Repository
		requestRepository   *requestRepo.Repository
		settingsRepository  *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		eventRepository = eventRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		procedureRepository = procedureRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		eventRepository = eventRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		procedureRepository = procedureRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	staffSvc := staffService.NewService(staffRepository, log)
	procedureSvc := proceduresService.NewService(procedureRepository, staffRepository, log)
	eventSvc := eventsService.NewService(eventRepository, log)
	requestSvc := requestsService.NewService(requestRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	findAvailableSlotsUseCase := findAvailableSlotsUC.NewUseCase(
		staffRepository,
		procedureRepository,
		eventRepository,
		settingsRepository,
		log,
	)

	createEventUseCase := createEventUC.NewUseCase(
		eventRepository,
		staffRepository,
		procedureRepository,
		txMgr,
		log,
	)

	approveRequestUseCase := approveRequestUC.NewUseCase(
		requestRepository,
		eventRepository,
		procedureRepository,
		settingsRepository,
		txMgr,
		waClient,
		log,
	)

	rejectRequestUseCase := rejectRequestUC.NewUseCase(
		requestRepository,
		txMgr,
		waClient,
		log,
	)

	expireRequestsUseCase := expireRequestsUC.NewUseCase(
		requestRepository,
		settingsRepository,
		log,
	)

	handleInboundMessageUseCase := handleInboundMessageUC.NewUseCase(
		requestRepository,
		procedureRepository,
		settingsRepository,
		findAvailableSlotsUseCase,
		waClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(findAvailableSlotsUseCase, log)
	createEvent := createEventHandler.NewHandler(createEventUseCase, log)
	getEvents := getEventsHandler.NewHandler(eventSvc, log)
	getEvent := getEventHandler.NewHandler(eventSvc, log)
	cancelEvent := cancelEventHandler.NewHandler(eventSvc, log)
	updateEventStatus := updateEventStatusHandler.NewHandler(eventSvc, log)
	deleteEvent := deleteEventHandler.NewHandler(eventSvc, log)
	listRequests := listRequestsHandler.NewHandler(requestSvc, log)
	approveRequest := approveRequestHandler.NewHandler(approveRequestUseCase, log)
	rejectRequest := rejectRequestHandler.NewHandler(rejectRequestUseCase, log)
	expireRequests := expireRequestsHandler.NewHandler(expireRequestsUseCase, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)
	deleteStaff := deleteStaffHandler.NewHandler(staffSvc, log)
	createProcedure := createProcedureHandler.NewHandler(procedureSvc, log)
	listProcedures := listProceduresHandler.NewHandler(procedureSvc, log)
	updateProcedure := updateProcedureHandler.NewHandler(procedureSvc, log)
	deleteProcedure := deleteProcedureHandler.NewHandler(procedureSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	whatsappWebhook := whatsappWebhookHandler.NewHandler(handleInboundMessageUseCase, waClient, webhookBusinessID, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Webhook от Meta: подтверждение подписки и входящие сообщения
	api.HandleFunc("/whatsapp/webhook", whatsappWebhook.HandleVerify).Methods(http.MethodGet)
	api.HandleFunc("/whatsapp/webhook", whatsappWebhook.HandleInbound).Methods(http.MethodPost)

	// Подбор доступных слотов
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки календаря бизнеса
	api.HandleFunc("/businesses/{businessId}/settings",
		getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- События календаря ---
	protected.HandleFunc("/businesses/{businessId}/events", createEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/events", getEvents.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/events/{eventId}/cancel", cancelEvent.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/events/{eventId}/status", updateEventStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)

	// --- Заявки на бронирование ---
	protected.HandleFunc("/businesses/{businessId}/requests", listRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/requests/expire", expireRequests.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/requests/{requestId}/approve", approveRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/requests/{requestId}/reject", rejectRequest.Handle).Methods(http.MethodPost)

	// --- Сотрудники ---
	protected.HandleFunc("/businesses/{businessId}/staff", createStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/staff", listStaff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}", deleteStaff.Handle).Methods(http.MethodDelete)

	// --- Процедуры ---
	protected.HandleFunc("/businesses/{businessId}/procedures", createProcedure.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/procedures", listProcedures.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/procedures/{procedureId}", updateProcedure.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/procedures/{procedureId}", deleteProcedure.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	protected.HandleFunc("/businesses/{businessId}/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
