package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"cinevault/api"
	"cinevault/config"
	"cinevault/handlers"
	"cinevault/internal/store"
	"cinevault/services/catalog"
	"cinevault/services/posters"
)

func main() {
	demoMode := flag.Bool("demo", false, "serve an in-memory film store instead of the configured backend")
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	configPath := os.Getenv("CINEVAULT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			slog.SetDefault(slog.New(slog.NewTextHandler(multiWriter, nil)))
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	driver := settings.Database.Driver
	dsn := settings.Database.Path
	if driver == "postgres" {
		dsn = settings.Database.DSN
	}
	if *demoMode {
		driver, dsn = "memory", ""
		log.Printf("demo mode: using in-memory film store")
	}
	if driver == "sqlite" || driver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(settings.Database.Path), 0o755); err != nil {
			log.Fatalf("failed to create database directory: %v", err)
		}
	}

	// Transient open failures (locked file, database still starting) get a
	// few attempts before giving up.
	filmStore, err := retry.DoWithData(
		func() (store.Store, error) {
			return store.Open(driver, dsn)
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
	if err != nil {
		log.Fatalf("failed to open film store: %v", err)
	}
	defer filmStore.Close()

	storeTimeout := time.Duration(settings.Database.TimeoutSeconds) * time.Second
	catalogService := catalog.NewService(filmStore, storeTimeout)

	posterService, err := posters.NewService(afero.NewOsFs(), settings.Posters.Directory)
	if err != nil {
		log.Fatalf("failed to initialise poster storage: %v", err)
	}

	filmsHandler := handlers.NewFilmsHandler(catalogService)
	searchHandler := handlers.NewSearchHandler(catalogService)
	statsHandler := handlers.NewStatsHandler(catalogService)
	exportHandler := handlers.NewExportHandler(catalogService)
	postersHandler := handlers.NewPostersHandler(posterService, catalogService)

	var limiter *api.RateLimiter
	if settings.RateLimit.Enabled {
		limiter = api.NewRateLimiter(settings.RateLimit.RPS, settings.RateLimit.Burst)
	}

	r := mux.NewRouter()
	api.Register(r, filmsHandler, searchHandler, statsHandler, exportHandler, postersHandler, limiter)

	// Stored posters are served directly from the poster filesystem.
	r.PathPrefix("/posters/").Handler(
		http.StripPrefix("/posters/", http.FileServer(posterService.HTTPFileSystem())),
	).Methods(http.MethodGet)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("cinevault listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("shutdown complete")
}
