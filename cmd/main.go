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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	deleteOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_override"
	generateSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_slots"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getOverridesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_overrides"
	getRescheduleRequestHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_reschedule_request"
	getSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_slots"
	getTemplateHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_template"
	getUserBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_bookings"
	listRescheduleRequestsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_reschedule_requests"
	requestRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/request_reschedule"
	respondRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/respond_reschedule"
	upsertOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/upsert_override"
	upsertTemplateHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/upsert_template"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	overrideRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/override"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifharbor"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	rescheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/reschedule"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	cancelBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_slots"
	requestRescheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/request_reschedule"
	respondRescheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/respond_reschedule"
	expiryWorker "github.com/m04kA/SMC-ScheduleService/internal/workers/expiry"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент сервиса уведомлений
	// При выключенных уведомлениях nil-клиент превращает отправку в no-op
	var notifClient *notifharbor.Client
	if cfg.Notifier.Enabled {
		notifClient = notifharbor.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("NotifHarbor client initialized (url=%s timeout=%ds)",
			cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		log.Info("Notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository       *slotRepo.Repository
		templateRepository   *templateRepo.Repository
		overrideRepository   *overrideRepo.Repository
		bookingRepository    *bookingRepo.Repository
		rescheduleRepository *rescheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		overrideRepository = overrideRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		overrideRepository = overrideRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		templateRepository,
		overrideRepository,
		slotRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		log,
	)
	rescheduleSvc := rescheduleService.NewService(
		rescheduleRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		templateRepository,
		overrideRepository,
		slotRepository,
		notifClient,
		txMgr,
		cfg.Scheduling.GenerationHorizonDays,
		cfg.Scheduling.MaxBookingsPerSlot,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		notifClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		rescheduleRepository,
		notifClient,
		txMgr,
		log,
	)
	requestRescheduleUseCase := requestRescheduleUC.NewUseCase(
		bookingRepository,
		slotRepository,
		rescheduleRepository,
		notifClient,
		txMgr,
		cfg.Scheduling.RescheduleWindowHours,
		log,
	)
	respondRescheduleUseCase := respondRescheduleUC.NewUseCase(
		bookingRepository,
		slotRepository,
		rescheduleRepository,
		notifClient,
		txMgr,
		log,
	)

	// Фоновая проверка просроченных заявок на перенос
	worker := expiryWorker.NewWorker(
		rescheduleSvc,
		time.Duration(cfg.Scheduling.ExpirySweepInterval)*time.Second,
		log,
	)
	worker.Start()

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(scheduleSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	upsertTemplate := upsertTemplateHandler.NewHandler(scheduleSvc, log)
	getTemplate := getTemplateHandler.NewHandler(scheduleSvc, log)
	upsertOverride := upsertOverrideHandler.NewHandler(scheduleSvc, log)
	getOverrides := getOverridesHandler.NewHandler(scheduleSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(scheduleSvc, log)
	blockSlot := blockSlotHandler.NewHandler(scheduleSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	requestReschedule := requestRescheduleHandler.NewHandler(requestRescheduleUseCase, log)
	respondReschedule := respondRescheduleHandler.NewHandler(respondRescheduleUseCase, log)
	getRescheduleRequest := getRescheduleRequestHandler.NewHandler(rescheduleSvc, log)
	listRescheduleRequests := listRescheduleRequestsHandler.NewHandler(rescheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Просмотр слотов расписания
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Переносы ---
	protected.HandleFunc("/bookings/{bookingId}/reschedule", requestReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reschedule-requests", listRescheduleRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reschedule-requests/{requestId}", getRescheduleRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reschedule-requests/{requestId}/respond", respondReschedule.Handle).Methods(http.MethodPost)

	// --- Управление расписанием (для администраторов) ---
	protected.HandleFunc("/schedule/generate", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/template", getTemplate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/template/{dayOfWeek}", upsertTemplate.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/overrides", getOverrides.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/overrides/{date}", upsertOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/overrides/{date}", deleteOverride.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPatch)

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

	// Останавливаем фоновый воркер
	worker.Stop()
	log.Info("Expiry worker stopped")

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
