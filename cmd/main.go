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

	cancelBookingHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/cancel_booking"
	confirmWithCreditsHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/confirm_with_credits"
	createBookingHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/delete_booking"
	gatewayWebhookHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/gateway_webhook"
	getAvailabilityDayHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/get_availability_day"
	getBookingHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/get_booking"
	getHealerAvailabilityHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/get_healer_availability"
	getHealerBookingsHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/get_healer_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/update_booking_status"
	updateHealerAvailabilityHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/update_healer_availability"
	validateSlotHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/validate_slot"
	verifyPaymentHandler "github.com/m04kA/SMC-WellnessBooking/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-WellnessBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WellnessBooking/internal/config"
	"github.com/m04kA/SMC-WellnessBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	healerRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/healer"
	membershipRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/membership"
	paymentRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/payment"
	refundRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/refund"
	serviceRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-WellnessBooking/internal/integrations/paygateway"
	bookingsService "github.com/m04kA/SMC-WellnessBooking/internal/service/bookings"
	healersService "github.com/m04kA/SMC-WellnessBooking/internal/service/healers"
	cancelBookingUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/cancel_booking"
	confirmWithCreditsUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/confirm_with_credits"
	createBookingUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/get_availability"
	processWebhookUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/process_webhook"
	rescheduleBookingUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/reschedule_booking"
	validateSlotUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/validate_slot"
	verifyPaymentUC "github.com/m04kA/SMC-WellnessBooking/internal/usecase/verify_payment"
	"github.com/m04kA/SMC-WellnessBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/logger"
	"github.com/m04kA/SMC-WellnessBooking/pkg/metrics"
	"github.com/m04kA/SMC-WellnessBooking/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WellnessBooking/pkg/txmanager"
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

	log.Info("Starting SMC-WellnessBooking...")
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

	// Клиент платежного шлюза
	gatewayClient := paygateway.NewClient(
		cfg.Gateway.URL,
		cfg.Secrets.GatewayKeyID,
		cfg.Secrets.GatewayKeySecret,
		time.Duration(cfg.Gateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.Gateway.URL, cfg.Gateway.Timeout)

	// Публикация доменных событий (опционально)
	// Nil publisher безопасен: Publish на nil получателе молча ничего не делает
	var publisher *events.Publisher
	if cfg.Events.Enabled {
		publisher, err = events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		defer publisher.Close()
		log.Info("Event publisher initialized (exchange=%s)", cfg.Events.Exchange)
	} else {
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		healerRepository     *healerRepo.Repository
		serviceRepository    *serviceRepo.Repository
		paymentRepository    *paymentRepo.Repository
		refundRepository     *refundRepo.Repository
		membershipRepository *membershipRepo.Repository
	)

	// Интерфейс менеджера транзакций, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		healerRepository = healerRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		refundRepository = refundRepo.NewRepository(wrappedDB)
		membershipRepository = membershipRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		healerRepository = healerRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		refundRepository = refundRepo.NewRepository(db)
		membershipRepository = membershipRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	healerSvc := healersService.NewService(healerRepository, log)

	// Инициализируем use cases
	validateSlotUseCase := validateSlotUC.NewUseCase(
		bookingRepository,
		healerRepository,
		serviceRepository,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		healerRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		validateSlotUseCase,
		gatewayClient,
		txMgr,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		validateSlotUseCase,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		refundRepository,
		gatewayClient,
		publisher,
		txMgr,
		cfg.Secrets.RefundsEnabled,
		log,
	)

	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		publisher,
		txMgr,
		cfg.Secrets.GatewayKeySecret,
		log,
	)

	confirmWithCreditsUseCase := confirmWithCreditsUC.NewUseCase(
		bookingRepository,
		membershipRepository,
		publisher,
		txMgr,
		log,
	)

	processWebhookUseCase := processWebhookUC.NewUseCase(
		paymentRepository,
		refundRepository,
		bookingRepository,
		membershipRepository,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailabilityDay := getAvailabilityDayHandler.NewHandler(getAvailabilityUseCase, log)
	validateSlot := validateSlotHandler.NewHandler(validateSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getHealerBookings := getHealerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	confirmWithCredits := confirmWithCreditsHandler.NewHandler(confirmWithCreditsUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	gatewayWebhook := gatewayWebhookHandler.NewHandler(processWebhookUseCase, cfg.Secrets.WebhookSecret, log)
	getHealerAvailability := getHealerAvailabilityHandler.NewHandler(healerSvc, log)
	updateHealerAvailability := updateHealerAvailabilityHandler.NewHandler(healerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Сетка слотов мастера на день
	api.HandleFunc("/healers/{healerId}/availability-day",
		getAvailabilityDay.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера
	api.HandleFunc("/healers/{healerId}/availability",
		getHealerAvailability.Handle).Methods(http.MethodGet)

	// Проверка слота перед бронированием
	api.HandleFunc("/slots/validate", validateSlot.Handle).Methods(http.MethodPost)

	// Вебхук платежного шлюза (аутентификация по HMAC подписи тела)
	api.HandleFunc("/payments/webhook", gatewayWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Удаление бронирования
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Отмена бронирования с расчетом возврата
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другое время
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Подтверждение бронирования сессионным кредитом
	protected.HandleFunc("/bookings/{bookingId}/confirm-with-credits",
		confirmWithCredits.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Мастера ---
	// Список бронирований мастера
	protected.HandleFunc("/healers/{healerId}/bookings", getHealerBookings.Handle).Methods(http.MethodGet)

	// Замена недельного расписания мастера
	protected.HandleFunc("/healers/{healerId}/availability",
		updateHealerAvailability.Handle).Methods(http.MethodPut)

	// --- Платежи ---
	// Подтверждение оплаты по подписи чекаута
	protected.HandleFunc("/payments/verify", verifyPayment.Handle).Methods(http.MethodPost)

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
