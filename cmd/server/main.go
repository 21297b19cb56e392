package main

import (
	"context"
	"fmt"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/avinashn/goalcompass-backend/internal/adapter/analyzer"
	grpcadapter "github.com/avinashn/goalcompass-backend/internal/adapter/grpc"
	httpadapter "github.com/avinashn/goalcompass-backend/internal/adapter/http"
	"github.com/avinashn/goalcompass-backend/internal/adapter/repository/postgres"
	"github.com/avinashn/goalcompass-backend/internal/usecase/calculator"
	"github.com/avinashn/goalcompass-backend/internal/usecase/goal"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
	"github.com/avinashn/goalcompass-backend/internal/usecase/profilestore"
	"github.com/avinashn/goalcompass-backend/internal/usecase/seeder"
)

const (
	defaultAPIToken = "dev-token"
	defaultGRPCPort = ":8080"
	defaultHTTPPort = ":8081"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "goalcompass")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	profileRepo := postgres.NewProfileRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	parameterRepo := postgres.NewParameterRepository(db)

	ctx := context.Background()

	// 3. Parameter store: built-in defaults, stored overrides, optional
	// assumptions file at bootstrap priority.
	store := params.NewStore(parameterRepo, analyzer.NewDeterministicEngine(), logger)
	if err := store.Load(ctx); err != nil {
		logger.Fatal("failed to load parameter overrides", zap.Error(err))
	}
	if assumptions := os.Getenv("ASSUMPTIONS_FILE"); assumptions != "" {
		if err := store.LoadAssumptionsFile(ctx, assumptions); err != nil {
			logger.Fatal("failed to load assumptions file",
				zap.String("path", assumptions),
				zap.Error(err))
		}
		logger.Info("assumptions file applied", zap.String("path", assumptions))
	}

	// 4. Seed the category catalogue
	catalogueSeeder := seeder.NewCatalogueSeeder(categoryRepo)
	if err := catalogueSeeder.Seed(ctx); err != nil {
		logger.Fatal("failed to seed goal categories", zap.Error(err))
	}
	logger.Info("goal category catalogue seeded")

	// 5. Initialize Services (Use Cases)
	registry := calculator.NewRegistry(store, logger)
	probabilityAnalyzer := analyzer.NewClient(store, registry, analyzer.NewResultCache(), logger)
	profileService := profilestore.NewService(profilestore.NewCache(), profileRepo, goalRepo, logger)
	goalService := goal.NewService(goalRepo, registry, probabilityAnalyzer, logger)

	apiToken := envOr("API_TOKEN", defaultAPIToken)

	// 6. Start HTTP API
	httpPort := envOr("HTTP_PORT", defaultHTTPPort)
	apiHandler := httpadapter.NewHandler(profileService, goalService, store, categoryRepo, logger)
	router := httpadapter.SetupRouter(apiHandler, apiToken)
	httpServer := &nethttp.Server{Addr: httpPort, Handler: router}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", httpPort))
		if err := httpServer.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			logger.Fatal("failed to serve HTTP server", zap.Error(err))
		}
	}()

	// 7. Start gRPC Server (health and reflection; the generated bindings
	// attach the facade's methods once the goalcompass proto API is published)
	grpcPort := envOr("GRPC_PORT", defaultGRPCPort)
	rpcFacade := grpcadapter.NewServer(profileService, goalService, logger)

	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(apiToken),
		),
	)

	healthServer := health.NewServer()
	healthv1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthv1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(rpcFacade.ServiceName(), healthv1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}

	// Start server in a goroutine
	go func() {
		logger.Info("gRPC server listening", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("failed to serve gRPC server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, healthServer, httpServer, logger)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, healthServer *health.Server, httpServer *nethttp.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))

	healthServer.SetServingStatus("", healthv1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}

	grpcServer.GracefulStop()
	logger.Info("servers stopped")
}
