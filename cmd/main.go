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

	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	deriveValuesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/derive_values"
	getGroupHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_group"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	getReservationValueHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation_value"
	priceAllocationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/price_allocation"
	recalcValuesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/recalc_values"
	redistributeGroupHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/redistribute_group"
	searchAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/search_availability"
	searchCombinationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/search_combination"
	updateReservationStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/infra/cache"
	rateCache "github.com/m04kA/SMC-RentalService/internal/infra/cache/exchangerate"
	channelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/channel"
	exchangeRateRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/exchangerate"
	rateRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rate"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-RentalService/internal/integrations/fxapi"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/exchangerate"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/valueledger"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	priceAllocationUC "github.com/m04kA/SMC-RentalService/internal/usecase/price_allocation"
	redistributeGroupUC "github.com/m04kA/SMC-RentalService/internal/usecase/redistribute_group"
	searchAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
	searchCombinationUC "github.com/m04kA/SMC-RentalService/internal/usecase/search_combination"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Без метрик обёртка только прокидывает вызовы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	unitRepository := unitRepo.NewRepository(wrappedDB)
	rateRepository := rateRepo.NewRepository(wrappedDB)
	channelRepository := channelRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	exchangeRateRepository := exchangeRateRepo.NewRepository(wrappedDB)

	// Кэш курсов валют (опционально)
	var ratesCache exchangerate.Cache
	if cfg.Redis.Enabled() {
		connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.Connect(connectCtx, cfg.Redis.URL)
		cancelConnect()
		if err != nil {
			log.Warn("Redis unavailable, exchange rates will be read from database: %v", err)
		} else {
			defer redisClient.Close()
			ratesCache = rateCache.NewCache(redisClient)
			log.Info("Exchange rate cache enabled (historical_ttl=%ds, today_ttl=%ds)",
				cfg.Redis.HistoricalTTL, cfg.Redis.TodayTTL)
		}
	}

	// Инициализируем интеграционных клиентов
	fxClient := fxapi.NewClient(
		cfg.ExchangeRates.URL,
		time.Duration(cfg.ExchangeRates.Timeout)*time.Second,
		log,
	)
	log.Info("Exchange rate client initialized (url=%s, timeout=%ds, lookback=%dd)",
		cfg.ExchangeRates.URL, cfg.ExchangeRates.Timeout, cfg.ExchangeRates.LookbackDays)

	// Инициализируем сервисы
	rateProvider := exchangerate.NewProvider(
		ratesCache,
		exchangeRateRepository,
		fxClient,
		exchangerate.Options{
			HistoricalTTL: time.Duration(cfg.Redis.HistoricalTTL) * time.Second,
			TodayTTL:      time.Duration(cfg.Redis.TodayTTL) * time.Second,
			LookbackDays:  cfg.ExchangeRates.LookbackDays,
		},
		metricsCollector,
		log,
	)
	resolver := availability.NewResolver(unitRepository, rateRepository, reservationRepository, log)
	engine := pricing.NewEngine(rateProvider, metricsCollector, log)
	valuer := valueledger.NewValuer(rateProvider)
	calculator := valueledger.NewCalculator()
	reservationSvc := reservationsService.NewService(reservationRepository, valuer, rateProvider, log)

	// Инициализируем use cases
	searchAvailabilityUseCase := searchAvailabilityUC.NewUseCase(resolver, log)
	searchCombinationUseCase := searchCombinationUC.NewUseCase(resolver, log)
	priceAllocationUseCase := priceAllocationUC.NewUseCase(resolver, channelRepository, engine, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		resolver,
		channelRepository,
		reservationRepository,
		engine,
		txMgr,
		metricsCollector,
		log,
	)
	redistributeGroupUseCase := redistributeGroupUC.NewUseCase(
		reservationRepository,
		valuer,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	includeTentative := cfg.Pricing.IncludeTentative()
	searchAvailability := searchAvailabilityHandler.NewHandler(searchAvailabilityUseCase, includeTentative, log)
	searchCombination := searchCombinationHandler.NewHandler(searchCombinationUseCase, includeTentative, log)
	priceAllocation := priceAllocationHandler.NewHandler(priceAllocationUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	redistributeGroup := redistributeGroupHandler.NewHandler(redistributeGroupUseCase, log)
	getGroup := getGroupHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getReservationValue := getReservationValueHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	deriveValues := deriveValuesHandler.NewHandler(calculator, log)
	recalcValues := recalcValuesHandler.NewHandler(calculator, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без арендатора)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без арендатора)
	// ============================================================

	// Калькулятор значений бронирования
	api.HandleFunc("/values/derive", deriveValues.Handle).Methods(http.MethodPost)
	api.HandleFunc("/values/recalc", recalcValues.Handle).Methods(http.MethodPost)

	// ============================================================
	// TENANT ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Tenant)

	// --- Поиск и цены ---
	protected.HandleFunc("/availability", searchAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/combination", searchCombination.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/quotes", priceAllocation.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/value", getReservationValue.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Группы ---
	protected.HandleFunc("/groups/{groupId}", getGroup.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{groupId}/total", redistributeGroup.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped")
}
