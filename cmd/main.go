package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/usersvc/usersvc/internal/bootstrap"
	"github.com/usersvc/usersvc/internal/facades"
	"github.com/usersvc/usersvc/internal/handlers"
	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/middlewares"
	"github.com/usersvc/usersvc/internal/repositories"
	"github.com/usersvc/usersvc/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title users backend API
// @version 1.0.0
// @description CRUD service over the users table with an instance metadata diagnostic endpoint
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		dbHost, dbPort, dbUser, dbPassword, dbName,
		dbMaxOpenConns, dbMaxIdleConns,
		metadataBaseURL,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		dbHost, dbPort, dbUser, dbPassword, dbName,
		dbMaxOpenConns, dbMaxIdleConns,
		metadataBaseURL,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, and metadata configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	dbHost string, dbPort int, dbUser, dbPassword, dbName string,
	dbMaxOpenConns, dbMaxIdleConns int,
	metadataBaseURL string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "")
	appPort = getEnv("PORT", "3000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Database config. Defaults are local-development placeholders,
	// real deployments set these via the environment.
	dbHost = getEnv("DB_HOST", "localhost")
	dbUser = getEnv("DB_USER", "postgres")
	dbPassword = getEnv("DB_PASSWORD", "postgres")
	dbName = getEnv("DB_NAME", "users")
	if dbPort, err = strconv.Atoi(getEnv("DB_PORT", "5432")); err != nil {
		return
	}
	if dbMaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if dbMaxIdleConns, err = strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Instance metadata config
	metadataBaseURL = getEnv("METADATA_BASE_URL", facades.DefaultMetadataBaseURL)

	return
}

// run initializes the logger, bootstraps the database, and serves HTTP
// until a shutdown signal arrives.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	dbHost string, dbPort int, dbUser, dbPassword, dbName string,
	dbMaxOpenConns, dbMaxIdleConns int,
	metadataBaseURL string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Bootstrap must finish before the listener binds; any failure here
	// is fatal for the process.
	logger.Log.Infow("Bootstrapping database", "host", dbHost, "port", dbPort, "database", dbName)
	db, err := bootstrap.Setup(ctx, dbHost, dbPort, dbUser, dbPassword, dbName, dbMaxOpenConns, dbMaxIdleConns)
	if err != nil {
		return fmt.Errorf("database bootstrap failed: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo)

	// Initialize facades
	metadataFacade := facades.NewInstanceMetadataFacade(metadataBaseURL)

	// Initialize handlers
	rootHandler := handlers.NewRootHandler()
	listUsersHandler := handlers.NewListUsersHandler(userService)
	getUserHandler := handlers.NewGetUserHandler(userService)
	createUserHandler := handlers.NewCreateUserHandler(userService)
	updateUserHandler := handlers.NewUpdateUserHandler(userService)
	deleteUserHandler := handlers.NewDeleteUserHandler(userService)
	serverInfoHandler := handlers.NewServerInfoHandler(metadataFacade)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Get("/", rootHandler)
	r.Get("/server-info", serverInfoHandler)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", listUsersHandler)
		r.Post("/", createUserHandler)
		r.Get("/{id}", getUserHandler)
		r.Put("/{id}", updateUserHandler)
		r.Delete("/{id}", deleteUserHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%s/swagger/doc.json", appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
