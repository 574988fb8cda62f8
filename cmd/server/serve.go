package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/forgelabs-io/synthetics-forge/cmd/server/handlers"
	"github.com/forgelabs-io/synthetics-forge/database"
	"github.com/forgelabs-io/synthetics-forge/deploy"
	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/monitor"
	"github.com/forgelabs-io/synthetics-forge/stepgen"
	"github.com/forgelabs-io/synthetics-forge/storage"
	"github.com/forgelabs-io/synthetics-forge/workflow"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tool server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	db, err := database.Connect(database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	log.Info(ctx, "database connected", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	monitorStore := monitor.NewMySQLStore(db, log)

	artifacts, err := storage.NewArtifactStore(cfg.Storage.Kind, storage.Config{
		BaseDir:       cfg.Storage.BaseDir,
		Bucket:        cfg.Storage.S3Bucket,
		Region:        cfg.Storage.S3Region,
		PresignExpiry: cfg.Storage.S3PresignExpiry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize artifact storage: %w", err)
	}

	// Prompt-driven generation is optional; without a Bedrock region the
	// workflow uses heuristics only.
	var textGen stepgen.TextGenerator
	if cfg.Bedrock.Region != "" {
		bedrockGen, err := stepgen.NewBedrockGenerator(ctx, cfg.Bedrock.Region, cfg.Bedrock.Model,
			cfg.Bedrock.AccessKey, cfg.Bedrock.SecretKey)
		if err != nil {
			log.Warn(ctx, "bedrock unavailable, prompt-driven generation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			textGen = bedrockGen
			log.Info(ctx, "bedrock text generation enabled", map[string]interface{}{
				"region": cfg.Bedrock.Region,
				"model":  cfg.Bedrock.Model,
			})
		}
	}

	creds := deploy.Credentials{
		KibanaURL: cfg.Elastic.KibanaURL,
		APIKey:    cfg.Elastic.APIKey,
		ProjectID: cfg.Elastic.ProjectID,
		Space:     cfg.Elastic.Space,
	}

	service := workflow.New(
		workflow.Config{Workdir: cfg.Workdir, Credentials: creds},
		stepgen.NewHeuristic(log),
		stepgen.NewPromptDriven(textGen, log),
		stepgen.NewSanitizer(log),
		deploy.NewCLIPusher(creds, log),
		monitorStore,
		artifacts,
		log,
	)

	router := mux.NewRouter()
	router.Use(handlers.RecoveryMiddleware(log))
	router.Use(handlers.RequestLoggingMiddleware(log))

	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	toolsHandler := handlers.NewToolsHandler(service, log)
	toolsRouter := router.PathPrefix("/api/v1/tools").Subrouter()
	toolsRouter.HandleFunc("/initialize", toolsHandler.Initialize).Methods("POST")
	toolsRouter.HandleFunc("/diagnose", toolsHandler.Diagnose).Methods("GET")
	toolsRouter.HandleFunc("/tests", toolsHandler.CreateTest).Methods("POST")
	toolsRouter.HandleFunc("/tests/deploy", toolsHandler.CreateAndDeploy).Methods("POST")
	toolsRouter.HandleFunc("/tests/prompt", toolsHandler.CreateFromPrompt).Methods("POST")

	monitorsHandler := handlers.NewMonitorsHandler(monitorStore, log)
	router.HandleFunc("/api/v1/monitors", monitorsHandler.List).Methods("GET")
	router.HandleFunc("/api/v1/monitors/{id}", monitorsHandler.GetByID).Methods("GET")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
