package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	adjustStockHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/adjust_stock"
	createBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking"
	getCalendarSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_calendar_slots"
	getIncomeTotalHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_income_total"
	getStylistBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_stylist_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/record_payment"
	runSweepHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/run_sweep"
	timeOffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/time_off"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_booking_status"
	updateCalendarSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_calendar_slots"
	updateOrderStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_order_status"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	calendarCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/calendar"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/calendar"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	incomeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/income"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/migrations"
	orderRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/order"
	productRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/product"
	stockAdjustmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/stockadjustment"
	timeOffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/timeoff"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/authz"
	"github.com/m04kA/SMC-SalonService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SalonService/internal/service/calendar"
	timeOffService "github.com/m04kA/SMC-SalonService/internal/service/timeoff"
	adjustStockUC "github.com/m04kA/SMC-SalonService/internal/usecase/adjust_stock"
	createBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	finalizePaymentUC "github.com/m04kA/SMC-SalonService/internal/usecase/finalize_payment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	runSweepsUC "github.com/m04kA/SMC-SalonService/internal/usecase/run_sweeps"
	transitionBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/transition_booking"
	updateOrderStatusUC "github.com/m04kA/SMC-SalonService/internal/usecase/update_order_status"
	"github.com/m04kA/SMC-SalonService/internal/worker/sweeper"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")

	location, err := cfg.Salon.Location()
	if err != nil {
		log.Fatal("Invalid salon timezone: %v", err)
	}

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.Migrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Менеджер транзакций и исполнитель запросов (с метриками или без)
	txOpts := txmanager.Options{
		MaxRetries: cfg.Transactions.MaxRetries,
		BaseDelay:  cfg.Transactions.BaseDelay(),
		OnRetry:    metricsCollector.ObserveTxRetry,
	}

	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManagerWithOptions(wrappedDB, txOpts)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db, txOpts)
	}

	// Кэш слотов календаря
	var slotsCache calendarCache.SlotsStore = calendarCache.Noop{}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unreachable, calendar cache disabled: %v", err)
		} else {
			slotsCache = calendarCache.NewCache(redisClient, time.Duration(cfg.Redis.SlotsTTL)*time.Second)
			log.Info("Calendar cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTL)
		}
	}

	// Уведомления
	var notify notifier.Notifier = notifier.Noop{}

	if cfg.Notifications.Enabled {
		dispatcher := notifier.NewDispatcher(
			notifier.NewClient(cfg.Notifications.URL, time.Duration(cfg.Notifications.Timeout)*time.Second),
			notifier.DispatcherConfig{
				QueueSize:   cfg.Notifications.QueueSize,
				RatePerSec:  cfg.Notifications.RatePerSec,
				Burst:       cfg.Notifications.Burst,
				SendTimeout: time.Duration(cfg.Notifications.Timeout) * time.Second,
			},
			log,
		)
		defer dispatcher.Close()

		notify = dispatcher
		log.Info("Notifications enabled (url=%s, rate=%.1f/s)", cfg.Notifications.URL, cfg.Notifications.RatePerSec)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	calendarRepository := calendarRepo.NewRepository(executor)
	catalogRepository := catalogRepo.NewRepository(executor)
	incomeRepository := incomeRepo.NewRepository(executor)
	orderRepository := orderRepo.NewRepository(executor)
	productRepository := productRepo.NewRepository(executor)
	adjustmentRepository := stockAdjustmentRepo.NewRepository(executor)
	timeOffRepository := timeOffRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)

	// Доступность и авторизация
	gate := authz.NewGate(userRepository, log)

	calendar := availability.NewCalendar(calendarRepository, slotsCache, log)
	timeOffIndex := availability.NewTimeOffIndex(userRepository, timeOffRepository, log)
	occupancy := availability.NewOccupancy(bookingRepository, catalogRepository, log)
	resolver := availability.NewResolver(calendar, timeOffIndex, occupancy, catalogRepository, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, gate, log)
	calendarSvc := calendarService.NewService(calendarRepository, slotsCache, gate, log)
	timeOffSvc := timeOffService.NewService(timeOffRepository, userRepository, gate, notify, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(resolver, location, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		calendar,
		timeOffIndex,
		occupancy,
		gate,
		notify,
		txMgr,
		location,
		log,
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		gate,
		notify,
		txMgr,
		log,
	)

	stockLedger := adjustStockUC.NewUseCase(
		productRepository,
		adjustmentRepository,
		userRepository,
		gate,
		notify,
		metricsCollector,
		txMgr,
		log,
	)

	updateOrderStatusUseCase := updateOrderStatusUC.NewUseCase(
		orderRepository,
		adjustmentRepository,
		stockLedger,
		gate,
		notify,
		txMgr,
		log,
	)

	finalizePaymentUseCase := finalizePaymentUC.NewUseCase(
		bookingRepository,
		orderRepository,
		incomeRepository,
		stockLedger,
		gate,
		notify,
		txMgr,
		log,
	)

	runSweepsUseCase := runSweepsUC.NewUseCase(
		bookingRepository,
		orderRepository,
		updateOrderStatusUseCase,
		metricsCollector,
		runSweepsUC.Config{
			BatchSize:           cfg.Scheduler.BatchSize,
			AutoCompleteEnabled: cfg.Scheduler.AutoCompleteEnabled,
			AbandonAfter:        time.Duration(cfg.Scheduler.AbandonAfterHours) * time.Hour,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(transitionBookingUseCase, log)
	payBooking := recordPaymentHandler.NewHandler(finalizePaymentUseCase, domain.IncomeBooking, "bookingId", log)
	payOrder := recordPaymentHandler.NewHandler(finalizePaymentUseCase, domain.IncomeOrder, "orderId", log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(updateOrderStatusUseCase, log)
	adjustStock := adjustStockHandler.NewHandler(stockLedger, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getStylistBookings := getStylistBookingsHandler.NewHandler(bookingSvc, log)
	timeOff := timeOffHandler.NewHandler(timeOffSvc, log)
	getCalendarSlots := getCalendarSlotsHandler.NewHandler(calendarSvc, log)
	updateCalendarSlots := updateCalendarSlotsHandler.NewHandler(calendarSvc, log)
	runSweep := runSweepHandler.NewHandler(runSweepsUseCase, gate, log)
	getIncomeTotal := getIncomeTotalHandler.NewHandler(incomeRepository, gate, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/stylists/{stylistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/slots", getCalendarSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", payBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylists/{stylistId}/bookings", getStylistBookings.Handle).Methods(http.MethodGet)

	// --- Магазин ---
	protected.HandleFunc("/orders/{orderId}/payment", payOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/products/{productId}/stock-adjustments", adjustStock.Handle).Methods(http.MethodPost)

	// --- Отгулы ---
	protected.HandleFunc("/time-off", timeOff.Create).Methods(http.MethodPost)
	protected.HandleFunc("/time-off/{id}/approve", timeOff.Approve).Methods(http.MethodPatch)
	protected.HandleFunc("/time-off/{id}/reject", timeOff.Reject).Methods(http.MethodPatch)
	protected.HandleFunc("/time-off/{id}", timeOff.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/stylists/{stylistId}/time-off", timeOff.ListByStylist).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/calendar/slots", updateCalendarSlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/admin/sweeps/{sweep}", runSweep.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/income/total", getIncomeTotal.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Фоновые sweep-задачи
	if cfg.Scheduler.Enabled {
		sweepWorker := sweeper.New(runSweepsUseCase, sweeper.Config{
			ExpireInterval:  time.Duration(cfg.Scheduler.ExpireInterval) * time.Second,
			AbandonInterval: time.Duration(cfg.Scheduler.AbandonInterval) * time.Second,
		}, log)

		g.Go(func() error {
			log.Info("Sweeper started (expire=%ds, abandon=%ds, auto_complete=%t)",
				cfg.Scheduler.ExpireInterval, cfg.Scheduler.AbandonInterval, cfg.Scheduler.AutoCompleteEnabled)
			return sweepWorker.Run(ctx)
		})
	}

	// HTTP-сервер
	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown по сигналу или ошибке в другой горутине
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")

		if cfg.Metrics.Enabled {
			close(stopMetricsCh)
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("Server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service terminated with error: %v", err)
	}
}
