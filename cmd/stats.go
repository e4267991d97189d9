package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/client"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's progress from the practice server",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		username, _ := cmd.Flags().GetString("user")
		if strings.TrimSpace(username) == "" {
			return fmt.Errorf("--user is required")
		}

		c, err := client.New(serverURL)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		login, err := c.Login(ctx, username)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if login.Error != "" {
			return fmt.Errorf("login: %s", login.Error)
		}
		dash, err := c.Dashboard(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if dash.Error != "" {
			return fmt.Errorf("dashboard: %s", dash.Error)
		}

		u := dash.User
		fmt.Printf("User:      %s\n", u.Username)
		fmt.Printf("Level:     %d\n", u.Level)
		fmt.Printf("Score:     %d/%d\n", u.Score, api.MaxScore)
		fmt.Printf("Problems:  %d attempted, %d correct\n", u.TotalProblems, u.CorrectAnswers)
		fmt.Println()

		p := dash.Performance
		fmt.Printf("Recent accuracy:  %.0f%%\n", p.Accuracy)
		fmt.Printf("Average time:     %.1fs\n", p.AverageTime)
		if p.Suggestion != "" {
			fmt.Printf("Suggestion:       %s\n", p.Suggestion)
		}

		if len(dash.RecentProblems) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Printf("%-19s  %-20s  %8s  %8s  %5s  %s\n", "Time", "Problem", "Answer", "Yours", "Secs", "OK")
		fmt.Println(strings.Repeat("─", 74))
		for _, r := range dash.RecentProblems {
			ok := "✓"
			if !r.IsCorrect {
				ok = "✗"
			}
			fmt.Printf("%-19s  %-20s  %8.2f  %8.2f  %5d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Problem, 20), r.Answer, r.StudentAnswer, r.TimeTaken, ok)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("server", envOr("ITS_SERVER_URL", "http://localhost:5000"), "Practice server URL")
	statsCmd.Flags().StringP("user", "u", envOr("ITS_USER", ""), "Learner to report on")
}
