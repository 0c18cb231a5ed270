package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/earlysteps-ai/earlysteps/internal/api/handlers"
	"github.com/earlysteps-ai/earlysteps/internal/config"
	"github.com/earlysteps-ai/earlysteps/internal/jobs"
	"github.com/earlysteps-ai/earlysteps/internal/llm"
	"github.com/earlysteps-ai/earlysteps/internal/server"
	"github.com/earlysteps-ai/earlysteps/internal/service"
	"github.com/earlysteps-ai/earlysteps/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the earlysteps API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	kb := service.NewKnowledgeStore(cfg.KBFile)
	if err := kb.Load(); err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	if text := kb.Text(); text != "" {
		log.Printf("loaded knowledge base: %s (%d chars)", kb.Path(), len(text))
	} else {
		log.Printf("knowledge base empty or missing: %s (upload via /api/rag/upload)", kb.Path())
	}

	if !cfg.HasGroq() {
		log.Println("warning: GROQ_API_KEY not set, completion calls will fail")
	}
	completion := llm.NewClientWithConfig(llm.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
		Timeout: cfg.GroqTimeout,
	})
	log.Printf("completion model: %s", cfg.GroqModel)

	retriever := service.NewRetriever(kb, service.ChunkConfig{
		Size:    cfg.ChunkSize,
		Overlap: cfg.ChunkOverlap,
	})
	sessions := service.NewSessionStore(cfg.ChatHistoryLimit)

	planSvc := service.NewPlanService(retriever, completion, cfg.ContextBudget)
	chatSvc := service.NewChatService(retriever, completion, sessions, cfg.ContextBudget)

	var pruneWorker *jobs.Worker
	if cfg.BoundsSessions() {
		pruner := jobs.NewSessionPruner(sessions, cfg.MaxSessions)
		pruneWorker = jobs.NewWorker(pruner, cfg.SessionSweepInterval)
		go pruneWorker.Start(ctx)
		log.Printf("session pruner started (max %d sessions)", cfg.MaxSessions)
	}

	routerCfg := server.RouterConfig{
		PlanHandler:      handlers.NewPlanHandler(planSvc),
		ChatHandler:      handlers.NewChatHandler(chatSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(kb),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if pruneWorker != nil {
		pruneWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
