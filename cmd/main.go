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

	addWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/add_waitlist_entry"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	cancelWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_waitlist_entry"
	convertWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/convert_waitlist_entry"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createRecurringSeriesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_recurring_series"
	expireWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/expire_waitlist"
	getAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_branch_bookings"
	getBranchWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_branch_waitlist"
	getSeriesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_series"
	getStaffBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_staff_bookings"
	getStaffWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_staff_waitlist"
	getWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_waitlist_entry"
	getWaitlistStatsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_waitlist_stats"
	matchWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/match_waitlist"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling/conflict"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	convertWaitlistUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/convert_waitlist"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	createRecurringSeriesUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_series"
	getAvailabilityUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	matchWaitlistUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/match_waitlist"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")
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

	// Инициализируем клиент справочного сервиса
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("DirectoryService client initialized (url=%s, timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Инициализируем публикацию событий (если включена)
	var publisher *notify.Publisher
	if cfg.Notifications.Enabled {
		publisher, err = notify.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Info("Notification publisher initialized (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		log.Info("Notifications disabled, slot events will not be published")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Детектор конфликтов работает поверх репозитория бронирований
	conflictDetector := conflict.NewDetector(bookingRepository)

	// Подбор листа ожидания: без publisher матчинг выполняется, события не публикуются
	var matchPublisher matchWaitlistUC.NotificationPublisher
	if cfg.Notifications.Enabled {
		matchPublisher = publisher
	}
	matchWaitlist := matchWaitlistUC.NewUseCase(waitlistRepository, matchPublisher, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		matchWaitlist,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		&waitlistService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		conflictDetector,
		directory,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		conflictDetector,
		matchWaitlist,
		txMgr,
		log,
	)
	createRecurringSeriesUseCase := createRecurringSeriesUC.NewUseCase(
		bookingRepository,
		conflictDetector,
		directory,
		txMgr,
		cfg.Scheduling.MaxRecurrenceInstances,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		directory,
		log,
	)
	convertWaitlistUseCase := convertWaitlistUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		conflictDetector,
		directory,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getSeries := getSeriesHandler.NewHandler(bookingSvc, log)
	createRecurringSeries := createRecurringSeriesHandler.NewHandler(createRecurringSeriesUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	addWaitlistEntry := addWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	getWaitlistEntry := getWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	getStaffWaitlist := getStaffWaitlistHandler.NewHandler(waitlistSvc, log)
	getBranchWaitlist := getBranchWaitlistHandler.NewHandler(waitlistSvc, log)
	cancelWaitlistEntry := cancelWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	convertWaitlistEntry := convertWaitlistEntryHandler.NewHandler(convertWaitlistUseCase, log)
	getWaitlistStats := getWaitlistStatsHandler.NewHandler(waitlistSvc, log)
	matchWaitlistSlot := matchWaitlistHandler.NewHandler(matchWaitlist, log)
	expireWaitlist := expireWaitlistHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Свободные интервалы сотрудника на дату
	api.HandleFunc("/staff/{staffId}/availability", getAvailability.HandleStaff).Methods(http.MethodGet)

	// Свободные интервалы всех сотрудников филиала на дату
	api.HandleFunc("/branches/{branchId}/availability", getAvailability.HandleBranch).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Создание повторяющейся серии
	protected.HandleFunc("/bookings/recurring", createRecurringSeries.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (start/complete/no-show)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другое время
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Расписание сотрудника
	protected.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// Бронирования филиала на дату
	protected.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// Бронирования повторяющейся серии
	protected.HandleFunc("/series/{seriesId}", getSeries.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	// Добавление записи
	protected.HandleFunc("/waitlist", addWaitlistEntry.Handle).Methods(http.MethodPost)

	// Пакетное истечение просроченных записей
	protected.HandleFunc("/waitlist/expire", expireWaitlist.Handle).Methods(http.MethodPost)

	// Ручной запуск подбора кандидатов на освободившийся слот
	protected.HandleFunc("/waitlist/match", matchWaitlistSlot.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/waitlist/{entryId}", getWaitlistEntry.Handle).Methods(http.MethodGet)

	// Отзыв записи клиентом
	protected.HandleFunc("/waitlist/{entryId}/cancel", cancelWaitlistEntry.Handle).Methods(http.MethodPatch)

	// Конвертация уведомлённой записи в бронирование
	protected.HandleFunc("/waitlist/{entryId}/convert", convertWaitlistEntry.Handle).Methods(http.MethodPost)

	// Лист ожидания сотрудника
	protected.HandleFunc("/staff/{staffId}/waitlist", getStaffWaitlist.Handle).Methods(http.MethodGet)

	// Лист ожидания филиала
	protected.HandleFunc("/branches/{branchId}/waitlist", getBranchWaitlist.Handle).Methods(http.MethodGet)

	// Статистика листа ожидания филиала
	protected.HandleFunc("/branches/{branchId}/waitlist/stats", getWaitlistStats.Handle).Methods(http.MethodGet)

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
