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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBlockHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createProfessionalHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_professional"
	createServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_service"
	deleteBlockHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_block"
	deleteScheduleRuleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_schedule_rule"
	getAvailableDatesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking_stats"
	getDashboardStatsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_dashboard_stats"
	listBlocksHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_blocks"
	listBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_bookings"
	listProfessionalsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_professionals"
	listScheduleRulesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_schedule_rules"
	listServicesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_services"
	updateServiceHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_service"
	upsertScheduleRuleHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/upsert_schedule_rule"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
	dashboardService "github.com/m04kA/SMC-SchedulingService/internal/service/dashboard"
	scheduleService "github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		slotsRecorder    getAvailableSlotsUC.SlotsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		slotsRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка над соединением: транзакции через контекст, метрики запросов если включены
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)

	availabilityReader := availability.NewReader(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		blockRepository,
	)

	location := cfg.Availability.Location()
	log.Info("Availability: timezone=%s, merge_overlapping_rules=%t, days_ahead=%d (max %d)",
		location, cfg.Availability.MergeOverlappingRules, cfg.Availability.DefaultDaysAhead, cfg.Availability.MaxDaysAhead)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, blockRepository, catalogRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	dashboardSvc := dashboardService.NewService(bookingRepository, catalogRepository, txMgr, location, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityReader,
		slotsRecorder,
		getAvailableSlotsUC.Options{
			Location:              location,
			MergeOverlappingRules: cfg.Availability.MergeOverlappingRules,
		},
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(availabilityReader, location, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		blockRepository,
		txMgr,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(
		getAvailableDatesUseCase,
		cfg.Availability.DefaultDaysAhead,
		cfg.Availability.MaxDaysAhead,
		log,
	)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, location, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	listScheduleRules := listScheduleRulesHandler.NewHandler(scheduleSvc, log)
	upsertScheduleRule := upsertScheduleRuleHandler.NewHandler(scheduleSvc, log)
	deleteScheduleRule := deleteScheduleRuleHandler.NewHandler(scheduleSvc, log)
	listBlocks := listBlocksHandler.NewHandler(scheduleSvc, location, log)
	createBlock := createBlockHandler.NewHandler(scheduleSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(scheduleSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(catalogSvc, log)
	createProfessional := createProfessionalHandler.NewHandler(catalogSvc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(dashboardSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все ручки API требуют X-Organization-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Use(middleware.Auth)

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	// stats регистрируется раньше {bookingId}, иначе перехватится шаблоном
	api.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Каталог ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals", createProfessional.Handle).Methods(http.MethodPost)

	// --- Сводка ---
	api.HandleFunc("/dashboard/stats", getDashboardStats.Handle).Methods(http.MethodGet)

	// --- Расписание сотрудников ---
	api.HandleFunc("/professionals/{professionalId}/schedule-rules", listScheduleRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/schedule-rules/{dayOfWeek}", upsertScheduleRule.Handle).Methods(http.MethodPut)
	api.HandleFunc("/professionals/{professionalId}/schedule-rules/{dayOfWeek}", deleteScheduleRule.Handle).Methods(http.MethodDelete)

	// --- Блокировки ---
	api.HandleFunc("/professionals/{professionalId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор статистики пула
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
