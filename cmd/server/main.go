// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/config"
	"github.com/norruva/dpp-backend/internal/i18n"
	"github.com/norruva/dpp-backend/internal/router"
	"github.com/norruva/dpp-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	config.InitLogger(cfg.Log)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Open the record store
	kv, err := storage.Open(context.Background(), cfg)
	if err != nil {
		logrus.Fatal("Failed to open store: ", err)
	}
	records := storage.NewRecordStore(kv)
	defer records.Close()

	flows, err := buildFlows(context.Background(), cfg.AI)
	if err != nil {
		logrus.Fatal("Failed to initialize AI flows: ", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()
	r, err := router.Initialize(appCtx, cfg, records, flows)
	if err != nil {
		logrus.Fatal("Failed to initialize router: ", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":  cfg.Server.Port,
			"store": cfg.Store.Backend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}

// buildFlows answers text flows with Claude when an Anthropic key is set and
// images with Gemini when a Gemini key is set. Anything unconfigured falls
// back to the simulated flows.
func buildFlows(ctx context.Context, cfg config.AIConfig) (ai.Flows, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	simulated := ai.NewSimulated()

	var text ai.TextFlows = simulated
	if cfg.AnthropicAPIKey != "" {
		text = ai.NewAnthropicFlows(cfg.AnthropicAPIKey, cfg.AnthropicModel, timeout)
		logrus.WithField("model", cfg.AnthropicModel).Info("Using Anthropic for text flows")
	} else {
		logrus.Warn("ANTHROPIC_API_KEY not set, using simulated text flows")
	}

	var images ai.ImageGenerator = simulated
	if cfg.GeminiAPIKey != "" {
		imager, err := ai.NewGenAIImager(ctx, cfg.GeminiAPIKey, cfg.GeminiImageModel, timeout)
		if err != nil {
			return nil, err
		}
		images = imager
		logrus.WithField("model", cfg.GeminiImageModel).Info("Using Gemini for image generation")
	}

	return ai.Compose(text, images), nil
}
