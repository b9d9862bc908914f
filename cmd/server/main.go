package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huddle/internal"
	"huddle/internal/clock"
	"huddle/internal/entity"
	"huddle/internal/handler"
	"huddle/internal/middleware"
	"huddle/internal/reaper"
	"huddle/internal/repository"
	"huddle/internal/service"
	"huddle/pkg/logging"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logging.Setup()

	cfg, err := internal.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{})
	if err != nil {
		slog.Error("failed to open database", "db", cfg.DBName, "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&entity.Participant{}, &entity.Location{}, &entity.Message{}); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}
	slog.Info("storage initialized", "db", cfg.DBName)

	clk := clock.System()
	participantRepo := repository.NewSQLiteParticipantRepository(db)
	locationRepo := repository.NewSQLiteLocationRepository(db)
	messageRepo := repository.NewSQLiteMessageRepository(db)

	presenceService := service.NewPresenceService(participantRepo, clk)
	locationService := service.NewLocationService(locationRepo, clk)
	messageService := service.NewMessageService(messageRepo, participantRepo, clk)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SecretKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}

	participantHandler := handler.NewParticipantHandler(presenceService, cookieStore)
	locationHandler := handler.NewLocationHandler(locationService)
	messageHandler := handler.NewMessageHandler(messageService)

	r := mux.NewRouter()
	r.HandleFunc("/login", participantHandler.Login).Methods("POST")
	r.HandleFunc("/participants", participantHandler.ListActive).Methods("GET")
	r.HandleFunc("/locations", locationHandler.Report).Methods("POST")
	r.HandleFunc("/locations", locationHandler.ListFresh).Methods("GET")
	r.HandleFunc("/locations/visible", locationHandler.ListVisible).Methods("GET")
	r.HandleFunc("/messages", messageHandler.Send).Methods("POST")
	r.HandleFunc("/messages", messageHandler.List).Methods("GET")
	r.HandleFunc("/messages/received", messageHandler.DeleteReceived).Methods("DELETE")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.HTTPServerPort),
		Handler:        middleware.Logging(middleware.Session(cookieStore, r)),
		ReadTimeout:    time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The reaper owns only the single-pass logic; the cadence lives here.
	staleReaper := reaper.New(locationRepo, participantRepo, clk)
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.ReapIntervalS) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := staleReaper.Run(); err != nil {
					slog.Error("reaper pass failed", "error", err)
				}
			}
		}
	}()

	go func() {
		<-ctx.Done()
		slog.Info("received stop signal, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "address", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
