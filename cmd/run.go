package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/app"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/client"
)

// runApp connects to the practice server and launches the TUI.
func runApp(cmd *cobra.Command) error {
	serverURL, _ := cmd.Flags().GetString("server")
	username, _ := cmd.Flags().GetString("user")
	logFile, _ := cmd.Flags().GetString("log-file")
	interval, _ := cmd.Flags().GetDuration("stats-interval")

	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	c, err := client.New(serverURL, client.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("starting client", "server", c.BaseURL(), "run_id", c.RunID())

	return app.Run(cmd.Context(), app.Options{
		Client:        c,
		Username:      username,
		StatsInterval: interval,
		Logger:        logger,
	})
}

// envOr reads key from the environment (after loading .env) or returns
// fallback.
func envOr(key, fallback string) string {
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
