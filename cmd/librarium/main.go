package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/jvillodre/librarium/config"
	"github.com/jvillodre/librarium/handler"
	"github.com/jvillodre/librarium/internal/jsonlog"
	"github.com/jvillodre/librarium/repository"
	"github.com/jvillodre/librarium/repository/postgres"
	"github.com/jvillodre/librarium/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "API server port")
	env := flag.String("env", "", "Environment(development|staging|production)")
	dsn := flag.String("db-dsn", "", "PostgreSQL DSN")
	corsTrustedOrigins := flag.String("cors-trusted-origins", "", "Trusted CORS origins (space separated)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Command-line flags get the last word over file and environment.
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *env != "" {
		cfg.Server.Env = *env
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if *corsTrustedOrigins != "" {
		cfg.Cors.TrustedOrigins = strings.Fields(*corsTrustedOrigins)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Per-IP rate limiter buckets, evicted after a few minutes of silence.
	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go limiters.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, limiters, service)

	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
