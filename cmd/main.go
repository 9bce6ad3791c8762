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

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	editReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/edit_reservation"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getStationScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_station_schedule"
	getStationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_stations"
	stopSessionHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/stop_session"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/station"
	pricingService "github.com/m04kA/SMC-ReservationService/internal/service/pricing"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	editReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/edit_reservation"
	stopSessionUC "github.com/m04kA/SMC-ReservationService/internal/usecase/stop_session"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Тарифная сетка из конфига
	priceConfig, err := cfg.PriceConfig()
	if err != nil {
		log.Fatal("Failed to parse pricing config: %v", err)
	}
	log.Info("Pricing loaded for %d station types", len(priceConfig))

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

	// Инициализируем репозитории (с метриками или без)
	var (
		rsvRepository     *reservationRepo.Repository
		stationRepository *stationRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервиса бронирований
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		rsvRepository = reservationRepo.NewRepository(wrappedDB)
		stationRepository = stationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		rsvRepository = reservationRepo.NewRepository(db)
		stationRepository = stationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	priceCalc := pricingService.NewService(priceConfig)
	reservationSvc := reservationsService.NewService(
		rsvRepository,
		stationRepository,
		txMgr,
		cfg.Booking.CancelMinNoticeMinutes,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(rsvRepository, log)
	createReservationUseCase := createReservationUC.NewUseCase(
		rsvRepository,
		stationRepository,
		priceCalc,
		txMgr,
		log,
	)
	editReservationUseCase := editReservationUC.NewUseCase(
		rsvRepository,
		stationRepository,
		priceCalc,
		txMgr,
		log,
	)
	stopSessionUseCase := stopSessionUC.NewUseCase(
		rsvRepository,
		stationRepository,
		priceCalc,
		txMgr,
		cfg.Booking.MinChargeMinutes,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	editReservation := editReservationHandler.NewHandler(editReservationUseCase, log)
	stopSession := stopSessionHandler.NewHandler(stopSessionUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getStations := getStationsHandler.NewHandler(reservationSvc, log)
	getStationSchedule := getStationScheduleHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность и бронирования ---
	// Проверка доступности станций на интервал
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования (одиночного или группового)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID вместе с группой
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Редактирование бронирования
	api.HandleFunc("/reservations/{reservationId}", editReservation.Handle).Methods(http.MethodPatch)

	// Досрочная остановка сессии с перерасчетом
	api.HandleFunc("/reservations/{reservationId}/stop", stopSession.Handle).Methods(http.MethodPost)

	// Отмена бронирования клиентом
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Каталог станций ---
	// Список станций, опционально по филиалу
	api.HandleFunc("/stations", getStations.Handle).Methods(http.MethodGet)

	// Расписание станции на сутки
	api.HandleFunc("/stations/{stationId}/reservations", getStationSchedule.Handle).Methods(http.MethodGet)

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
