package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	// Таймзоны салонов должны загружаться и в контейнере без системной tzdata
	_ "time/tzdata"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_salon_bookings"
	getSalonSettingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_salon_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/reschedule_booking"
	scheduleOverridesHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/schedule_overrides"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_booking_status"
	updateSalonSettingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_salon_settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalog"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	salonService "github.com/m04kA/SMC-SalonBookingService/internal/service/salon"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// .env необязателен, уже заданные переменные окружения не перезаписываются
	envLoaded := godotenv.Load() == nil

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from %s", *configPath)
	if envLoaded {
		log.Info("Environment overrides loaded from .env")
	}

	// Метрики собираются всегда, наружу отдаются только при metrics.enabled
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Клиент каталога салонов (услуги, мастера, менеджеры)
	catalog := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: без Redis клиент ходит в каталог напрямую
			log.Warn("Redis is unavailable, catalog cache disabled: %v", err)
		} else {
			catalog.UseRedisCache(rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second)
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
		cancelPing()
	}
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	salonRepository := salonRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxRetries(cfg.Booking.SerializableRetries)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, salonRepository, catalog, txMgr, log)
	salonSvc := salonService.NewService(salonRepository, catalog, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		catalog,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		salonRepository,
		catalog,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		catalog,
		txMgr,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getSalonSettings := getSalonSettingsHandler.NewHandler(salonSvc, log)
	updateSalonSettings := updateSalonSettingsHandler.NewHandler(salonSvc, log)
	scheduleOverrides := scheduleOverridesHandler.NewHandler(salonSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/settings", getSalonSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/overrides", scheduleOverrides.List).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	createRoute := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		createRoute = limiter.Middleware(createRoute)
		log.Info("Booking rate limit enabled: %d/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createRoute).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для персонала) ---
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/settings", updateSalonSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/overrides", scheduleOverrides.Set).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/overrides/shift-pattern", scheduleOverrides.ApplyShiftPattern).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/overrides/{date}", scheduleOverrides.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
