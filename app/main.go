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

	"github.com/yeonho-kim/newsdigest/app/api"
	"github.com/yeonho-kim/newsdigest/app/cfg"
	"github.com/yeonho-kim/newsdigest/app/config"
	"github.com/yeonho-kim/newsdigest/app/database"
	"github.com/yeonho-kim/newsdigest/app/digest"
	"github.com/yeonho-kim/newsdigest/app/engine"
	"github.com/yeonho-kim/newsdigest/app/mailer"
	"github.com/yeonho-kim/newsdigest/app/news"
	"github.com/yeonho-kim/newsdigest/app/scheduler"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting news digest server", "version", cfg.GetVersion())

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	sourceLoader := config.NewLoader(appCfg.SourcesDir)
	if err := sourceLoader.Run(); err != nil {
		slog.Error("Failed to load source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded",
		"sources", sourceLoader.SourceCount(), "keywords", len(sourceLoader.Keywords()))

	subscriberRepo := database.NewSubscriberRepository(db)
	announcementRepo := database.NewAnnouncementRepository(db)

	registry, err := news.NewRegistry(sourceLoader.Sources(), news.DefaultHTTPClient(), appCfg.UserAgent, appCfg.ItemLimit)
	if err != nil {
		slog.Error("Failed to build news sources", "error", err)
		os.Exit(1)
	}

	sender := mailer.NewSMTPMailer(mailer.Options{
		Host:     appCfg.SMTPHost,
		Port:     appCfg.SMTPPort,
		Username: appCfg.SMTPUsername,
		Password: appCfg.SMTPPassword,
		Sender:   appCfg.SenderEmail,
		Timeout:  time.Duration(appCfg.SendTimeout) * time.Second,
	})

	dispatchEngine := engine.NewDispatchEngine(registry, subscriberRepo, digest.NewComposer(), sender, appCfg.WorkerCount)

	dispatchScheduler := scheduler.NewScheduler(dispatchEngine, announcementRepo, appCfg.SendAt)
	dispatchScheduler.Start()
	defer dispatchScheduler.Stop()

	apiHandler := api.NewHandler(subscriberRepo, announcementRepo, sourceLoader, dispatchScheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("News digest server started", "send_at", appCfg.SendAt)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
