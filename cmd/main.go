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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminDeleteReservationHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/admin_delete_reservation"
	adminInfoHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/admin_info"
	adminListReservationsHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/admin_list_reservations"
	adminListUsersHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/admin_list_users"
	adminSetDepositHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/admin_set_deposit"
	createReservationHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/delete_reservation"
	getAvailabilityHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/get_availability"
	getFacilityConfigHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/get_facility_config"
	getMeHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/get_me"
	getReservationHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/get_reservation"
	listFacilitiesHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/list_facilities"
	listReservationsHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/list_reservations"
	loginHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/logout"
	registerHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/register"
	reservationHistoryHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/reservation_history"
	updateFacilityConfigHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/update_facility_config"
	updateReservationHandler "github.com/m04kA/ReDe-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/ReDe-ReservationService/internal/api/middleware"
	"github.com/m04kA/ReDe-ReservationService/internal/config"
	"github.com/m04kA/ReDe-ReservationService/internal/domain"
	configRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/config"
	depositRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/deposit"
	reservationRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/ReDe-ReservationService/internal/infra/storage/session"
	userRepo "github.com/m04kA/ReDe-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/ReDe-ReservationService/internal/integrations/events"
	"github.com/m04kA/ReDe-ReservationService/internal/jobs"
	adminService "github.com/m04kA/ReDe-ReservationService/internal/service/admin"
	authService "github.com/m04kA/ReDe-ReservationService/internal/service/auth"
	configService "github.com/m04kA/ReDe-ReservationService/internal/service/config"
	reservationsService "github.com/m04kA/ReDe-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/ReDe-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/ReDe-ReservationService/internal/usecase/get_availability"
	updateReservationUC "github.com/m04kA/ReDe-ReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/ReDe-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/ReDe-ReservationService/pkg/logger"
	"github.com/m04kA/ReDe-ReservationService/pkg/metrics"
	"github.com/m04kA/ReDe-ReservationService/pkg/password"
	"github.com/m04kA/ReDe-ReservationService/pkg/token"
	"github.com/m04kA/ReDe-ReservationService/pkg/txmanager"
)

// sessionStore хранилище отозванных токенов (Redis или заглушка)
type sessionStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// eventPublisher публикатор событий (RabbitMQ или заглушка)
type eventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
	Close() error
}

// recoveryLogger адаптер логгера для gorilla/handlers.RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Panic recovered: %s", fmt.Sprint(v...))
}

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

	log.Info("Starting ReDe-ReservationService...")

	rules, err := cfg.BookingRules()
	if err != nil {
		log.Fatal("Invalid booking rules: %v", err)
	}
	log.Info("Booking rules: timezone=%s, hours=%s-%s, max_active=%d, deposit_enabled=%t",
		rules.Location, domain.FormatHour(rules.OpenHour), domain.FormatHour(rules.CloseHour),
		rules.MaxActiveReservations, rules.DepositEnabled)

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы ничего не делают
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// ============================================================
	// Redis: отозванные токены
	// ============================================================

	var sessions sessionStore = session.NopStore{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = session.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		sessions = session.NewStore(redisClient)
		log.Info("Token revocation store connected (redis=%s)", cfg.Redis.Addr)
	} else {
		log.Warn("Redis disabled: logout will not revoke tokens")
	}

	// ============================================================
	// RabbitMQ: события бронирований
	// ============================================================

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	depositRepository := depositRepo.NewRepository(wrappedDB)

	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	// Инициализируем сервисы
	authSvc := authService.NewService(
		userRepository,
		depositRepository,
		hasher,
		tokens,
		sessions,
		metricsCollector,
		rules.DepositEnabled,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		depositRepository,
		txMgr,
		publisher,
		metricsCollector,
		rules,
		log,
	)
	configSvc := configService.NewService(configRepository, rules, log)
	adminSvc := adminService.NewService(
		reservationRepository,
		userRepository,
		depositRepository,
		reservationsSvc,
		rules,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		depositRepository,
		txMgr,
		publisher,
		metricsCollector,
		rules,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		configRepository,
		txMgr,
		publisher,
		metricsCollector,
		rules,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		configRepository,
		rules,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)
	getMe := getMeHandler.NewHandler(authSvc, log)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, rules.Location, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, rules.Location, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	reservationHistory := reservationHistoryHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)

	listFacilities := listFacilitiesHandler.NewHandler(configSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, rules.Location, log)

	adminInfo := adminInfoHandler.NewHandler(adminSvc, log)
	adminListReservations := adminListReservationsHandler.NewHandler(adminSvc, log)
	adminDeleteReservation := adminDeleteReservationHandler.NewHandler(adminSvc, log)
	adminListUsers := adminListUsersHandler.NewHandler(adminSvc, log)
	adminSetDeposit := adminSetDepositHandler.NewHandler(adminSvc, log)
	getFacilityConfig := getFacilityConfigHandler.NewHandler(configSvc, log)
	updateFacilityConfig := updateFacilityConfigHandler.NewHandler(configSvc, log)

	// Фоновые задачи
	scheduler := jobs.NewScheduler(rules.Location, log)
	historyCleanup := jobs.NewHistoryCleanup(reservationRepository, cfg.Jobs.HistoryRetentionDays, log)
	if err := scheduler.AddHistoryCleanup(cfg.Jobs.HistoryCleanupCron, historyCleanup); err != nil {
		log.Fatal("Failed to schedule history cleanup: %v", err)
	}
	scheduler.Start()

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Лимит на вход и регистрацию по IP
	limitAuth := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		limitAuth = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Auth rate limit: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.Handle("/auth/register", limitAuth(register.Handle)).Methods(http.MethodPost)
	api.Handle("/auth/login", limitAuth(login.Handle)).Methods(http.MethodPost)

	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facility}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, sessions, log))

	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me", getMe.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	// history регистрируется до {reservationId}
	protected.HandleFunc("/reservations/history", reservationHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", deleteReservation.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (staff=true в токене)
	// ============================================================

	adminRouter := protected.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireStaff(userRepository, log))

	adminRouter.HandleFunc("/info", adminInfo.Handle).Methods(http.MethodGet)
	adminRouter.HandleFunc("/reservations", adminListReservations.Handle).Methods(http.MethodGet)
	adminRouter.HandleFunc("/reservations/{reservationId:[0-9]+}", adminDeleteReservation.Handle).Methods(http.MethodDelete)
	adminRouter.HandleFunc("/users", adminListUsers.Handle).Methods(http.MethodGet)
	adminRouter.HandleFunc("/users/{userId:[0-9]+}/deposit", adminSetDeposit.Handle).Methods(http.MethodPut)
	adminRouter.HandleFunc("/facilities/{facility}/config", getFacilityConfig.Handle).Methods(http.MethodGet)
	adminRouter.HandleFunc("/facilities/{facility}/config", updateFacilityConfig.Handle).Methods(http.MethodPut)

	// CORS и перехват паник поверх роутера
	var handler http.Handler = r
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.Server.CORSAllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(handler)
	}
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	scheduler.Stop(shutdownCtx)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close events publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
