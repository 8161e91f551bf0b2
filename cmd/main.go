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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/get_booking"
	getDealershipConfigHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/get_dealership_config"
	getWorkshopBookingsHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/get_workshop_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/update_booking_status"
	updateDealershipConfigHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/update_dealership_config"
	upsertBlockedDateHandler "github.com/m04kA/SMC-WorkshopBooking/internal/api/handlers/upsert_blocked_date"
	"github.com/m04kA/SMC-WorkshopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopBooking/internal/availability"
	"github.com/m04kA/SMC-WorkshopBooking/internal/config"
	"github.com/m04kA/SMC-WorkshopBooking/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/booking"
	dealershipRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/dealership"
	directoryRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/directory"
	scheduleRepo "github.com/m04kA/SMC-WorkshopBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WorkshopBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-WorkshopBooking/internal/integrations/tenantservice"
	bookingsService "github.com/m04kA/SMC-WorkshopBooking/internal/service/bookings"
	configService "github.com/m04kA/SMC-WorkshopBooking/internal/service/config"
	"github.com/m04kA/SMC-WorkshopBooking/internal/service/resolver"
	createBookingUC "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-WorkshopBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/logger"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/metrics"
	"github.com/m04kA/SMC-WorkshopBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-WorkshopBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Коллектор создается всегда, наружу отдается только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	dealershipRepository := dealershipRepo.NewRepository(wrappedDB)
	directoryRepository := directoryRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Кэш конфигурации дилеров (без Redis работает как сквозной)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, cache will miss until it recovers: %v", err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		pingCancel()
	}
	configCache := cache.New(rdb, time.Duration(cfg.Redis.TTL)*time.Second)

	// Инициализируем интеграционных клиентов
	tenantClient := tenantservice.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log,
	)
	log.Info("Tenant service client initialized (url=%s, timeout=%ds)", cfg.TenantService.URL, cfg.TenantService.Timeout)

	var (
		bookingNotifier createBookingUC.Notifier = notifier.Nop{}
		producer        *notifier.Producer
	)
	if cfg.Kafka.Enabled {
		producer = notifier.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		bookingNotifier = producer
		log.Info("Kafka producer initialized (topic=%s)", cfg.Kafka.Topic)
	}

	// Доменные компоненты
	slotResolver := resolver.NewResolver(dealershipRepository, scheduleRepository, configCache, log)
	computer := availability.NewComputer(availability.Policy{
		ReceptionFallback: cfg.Booking.ReceptionFallback,
	})

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	configSvc := configService.NewService(dealershipRepository, scheduleRepository, configCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		directoryRepository,
		slotResolver,
		tenantClient,
		computer,
		txMgr,
		bookingNotifier,
		metricsCollector,
		cfg.Booking.NotifyTimeoutDuration(),
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotResolver,
		bookingRepository,
		computer,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getWorkshopBookings := getWorkshopBookingsHandler.NewHandler(bookingSvc, log)
	getDealershipConfig := getDealershipConfigHandler.NewHandler(configSvc, log)
	updateDealershipConfig := updateDealershipConfigHandler.NewHandler(configSvc, log)
	upsertBlockedDate := upsertBlockedDateHandler.NewHandler(configSvc, log)

	commitLimiter := middleware.NewRateLimiter(cfg.Booking.CommitRatePerMinute, cfg.Booking.CommitBurst, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, X-Staff-Role учитывается)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalStaff)

	// Доступные слоты мастерской на дату
	public.HandleFunc("/dealerships/{dealershipId}/workshops/{workshopId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация сетки слотов дилера
	public.HandleFunc("/dealerships/{dealershipId}/config",
		getDealershipConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.Handle("/dealerships/{dealershipId}/bookings",
		commitLimiter.Middleware(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/dealerships/{dealershipId}/bookings/{bookingId}",
		getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealerships/{dealershipId}/bookings/{bookingId}/cancel",
		cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/dealerships/{dealershipId}/bookings/{bookingId}/status",
		updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление дилером (для сотрудников) ---
	protected.HandleFunc("/dealerships/{dealershipId}/workshops/{workshopId}/bookings",
		getWorkshopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealerships/{dealershipId}/config",
		updateDealershipConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/dealerships/{dealershipId}/blocked-dates",
		upsertBlockedDate.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, отправленных после последних коммитов
	if err := createBookingUseCase.Close(shutdownCtx); err != nil {
		log.Error("Notifications were not drained: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close Kafka producer: %v", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
