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

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	createClientHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_client"
	createServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_service"
	getAgendaHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_agenda"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getReportOverviewHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_report_overview"
	getServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_service"
	listClientsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_clients"
	listProfessionalsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_professionals"
	listServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_services"
	setServiceActiveHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/set_service_active"
	setWorkingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/set_working"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment_status"
	updateClientHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_client"
	updateProfessionalHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_professional"
	updateServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	authServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/authservice"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-SalonBooking/internal/service/clients"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Правила записи салона (часы работы, шаг, часовой пояс)
	policy, err := cfg.Salon.BookingPolicy()
	if err != nil {
		log.Fatal("Invalid salon configuration: %v", err)
	}
	log.Info("Salon hours %s-%s, step %d min, timezone %s, notice %d min, horizon %d days",
		cfg.Salon.OpenTime, cfg.Salon.CloseTime, cfg.Salon.SlotStepMinutes, policy.Location,
		cfg.Salon.MinBookingNoticeMinutes, cfg.Salon.AdvanceBookingDays)

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

	// Без метрик обёртка выполняет запросы без измерений
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		cfg.AuthService.APIKey,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AuthService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, policy, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	clientsSvc := clientsService.NewService(clientRepository, log)
	reportsSvc := reportsService.NewService(appointmentRepository, txMgr, policy.Location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		policy,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		txMgr,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, policy.Location, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getAgenda := getAgendaHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(catalogSvc, log)
	setWorking := setWorkingHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	setServiceActive := setServiceActiveHandler.NewHandler(catalogSvc, log)
	updateProfessional := updateProfessionalHandler.NewHandler(catalogSvc, log)
	listClients := listClientsHandler.NewHandler(clientsSvc, log)
	createClient := createClientHandler.NewHandler(clientsSvc, log)
	updateClient := updateClientHandler.NewHandler(clientsSvc, log)
	getReportOverview := getReportOverviewHandler.NewHandler(reportsSvc, log)

	auth := middleware.NewAuthenticator(authClient, catalogRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (сессия необязательна)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(auth.OptionalAuth)

	// Каталог
	public.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	public.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)

	// Доступные слоты
	public.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подтверждение записи (с ограничением частоты по IP)
	booking := public.PathPrefix("/appointments").Subrouter()
	if cfg.RateLimit.Enabled {
		// Подсети уже проверены в config.Validate
		trustedProxies, _ := cfg.RateLimit.Proxies()
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, trustedProxies, log)
		limiterCtx, stopLimiter := context.WithCancel(context.Background())
		defer stopLimiter()
		go limiter.Run(limiterCtx, 10*time.Minute)
		booking.Use(limiter.Middleware)
		log.Info("Rate limit enabled for bookings: %d req/min, burst %d, trusted proxies %v",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies)
	}
	booking.HandleFunc("", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание профессионала ---
	protected.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/working", setWorking.Handle).Methods(http.MethodPatch)

	// --- Управление салоном ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{serviceId}/active", setServiceActive.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/professionals/{professionalId}", updateProfessional.Handle).Methods(http.MethodPatch)

	// --- Клиенты ---
	protected.HandleFunc("/clients", listClients.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients", createClient.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{clientId}", updateClient.Handle).Methods(http.MethodPatch)

	// --- Отчеты администратора ---
	protected.HandleFunc("/reports/overview", getReportOverview.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
