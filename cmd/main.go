package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"pizza-fresca/internal/auth"
	"pizza-fresca/internal/config"
	"pizza-fresca/internal/database"
	"pizza-fresca/internal/httpx"
	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/messaging"
	"pizza-fresca/internal/services/menu"
	"pizza-fresca/internal/services/notification"
	"pizza-fresca/internal/services/order"
	"pizza-fresca/internal/services/reservation"
)

func main() {
	var (
		mode          = flag.String("mode", "", "Service mode (api, notification-worker, create-admin)")
		port          = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath    = flag.String("config", "config.yaml", "Path to config file")
		adminName     = flag.String("admin-name", "Admin", "Admin display name (create-admin mode)")
		adminEmail    = flag.String("admin-email", "", "Admin email (required for create-admin mode)")
		adminPassword = flag.String("admin-password", "", "Admin password (required for create-admin mode)")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api":
		if err := runAPIServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "API server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-worker":
		if err := runNotificationWorker(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Notification worker failed", requestID, err, nil)
			os.Exit(1)
		}
	case "create-admin":
		if *adminEmail == "" || *adminPassword == "" {
			log.Error("validation_failed", "admin-email and admin-password are required for create-admin mode", requestID, nil, nil)
			os.Exit(1)
		}
		if err := runCreateAdmin(ctx, cfg, log, *adminName, *adminEmail, *adminPassword); err != nil {
			log.Error("service_failed", "Admin creation failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runAPIServer runs the HTTP API: menu, orders, reservations and auth.
func runAPIServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	dispatcher := notification.NewDispatcher(publisher, cfg.Notifications.OwnerEmail, log)

	authService := auth.NewService(
		auth.NewPostgresStore(db),
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)
	mw := auth.NewMiddleware(authService)

	menuService := menu.NewService(menu.NewPostgresStore(db), log)
	orderService := order.NewService(menuService, order.NewPostgresStore(db), dispatcher, cfg.Delivery.Fee, log)
	reservationService := reservation.NewService(reservation.NewPostgresStore(db), dispatcher, log)

	router := mux.NewRouter()
	router.Use(httpx.RequestLogging(log))

	auth.NewHandler(authService, log).Register(router, mw)
	menu.NewHandler(menuService, log).Register(router, mw)
	order.NewHandler(orderService, log).Register(router, mw)
	reservation.NewHandler(reservationService, log).Register(router, mw)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server_listening", fmt.Sprintf("API server listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runCreateAdmin provisions an admin account and exits. Registration through
// the API only creates customers, so this is how the first administrator is
// bootstrapped.
func runCreateAdmin(ctx context.Context, cfg *config.Config, log *logger.Logger, name, email, password string) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	authService := auth.NewService(
		auth.NewPostgresStore(db),
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)

	_, err = authService.CreateAdmin(ctx, name, email, password)
	return err
}

// runNotificationWorker consumes notification events and delivers them.
func runNotificationWorker(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	worker := notification.NewWorker(conn, log)
	defer worker.Close()

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
