package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yogendersinghh/voting-system/auth"
	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/db"
	"github.com/yogendersinghh/voting-system/middleware"
	"github.com/yogendersinghh/voting-system/ratelimit"
	"github.com/yogendersinghh/voting-system/router"
)

func main() {
	var err error

	// Optional .env for local development
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment and flags")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Seed the default admin on first boot
	created, err := auth.EnsureDefaultAdmin(dbConn, cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		slog.Error("admin seeding failed", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Default admin created", "username", cfg.AdminUser)
	}

	// Fixed-window limiter for vote submission
	limiter := ratelimit.New(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	defer limiter.Stop()

	// Create router
	mux := router.NewRouter(dbConn, cfg, limiter)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
