package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/config"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/llm"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/server"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the practice server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ITS_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DBPath = p
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("closing database", "error", closeErr)
		}
	}()
	logger.Info("database ready", "path", cfg.DBPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var explainer tutor.Explainer
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	if provider != nil {
		explainer = tutor.NewLLMExplainer(provider, tutor.DefaultExplainerConfig())
		logger.Info("LLM explanations enabled", "provider", provider.Name(), "model", provider.ModelID())
	} else {
		logger.Info("LLM explanations disabled, using built-in tips")
	}

	_, handler := server.New(server.Options{
		Users:          st.UserRepo(),
		History:        st.HistoryRepo(),
		Tutor:          tutor.New(tutor.NewGenerator(nil), explainer, tutor.DefaultConfig(), logger),
		SessionSecret:  []byte(cfg.SessionSecret),
		SecureCookies:  !cfg.IsDevelopment(),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		RequestLogging: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	stop()

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
