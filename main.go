package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/topsurvey/survey-api/cliparse"
	"github.com/topsurvey/survey-api/db"
	"github.com/topsurvey/survey-api/metrics"
	"github.com/topsurvey/survey-api/middleware"
	"github.com/topsurvey/survey-api/router"
	"github.com/topsurvey/survey-api/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env first so flags and real env vars still win
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	// Connect to the database
	dbConn, err := db.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Apply migrations
	if err := db.Migrate(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(store.New(dbConn), metrics.New())

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Start server
	slog.Info("Listening", "port", cfg.Port, "origins", cfg.AllowedOrigins)
	if err := serve(server, ln, ctrlc, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// serve runs server on ln until a signal arrives on stop, then shuts down
// gracefully. It returns only after in-flight requests have drained or the
// timeout has forced them closed, so callers can release the database.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Wait for Ctrl-C signal
		if _, ok := <-stop; !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Shutdown closes the listener before draining
		<-done
		return nil
	}
	return err
}

func setupLogger(cfg cliparse.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
