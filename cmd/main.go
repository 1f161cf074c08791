package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user_accounts/internal/config"
	"user_accounts/internal/handlers"
	"user_accounts/internal/logger"
	"user_accounts/internal/repository"
	"user_accounts/internal/repository/db"
	"user_accounts/internal/server"
	"user_accounts/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config first, the logger level comes from it
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.Get(logger.InfoLevel)
		bootstrapLog.Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)

	// open DB
	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.Database.Path)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, cfg, log)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Server.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("starting http server", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
