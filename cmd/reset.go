package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a learner's level, score and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.UserRepo().Reset(cmd.Context(), username); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no learner named %q", username)
			}
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Printf("Reset progress for %s.\n", username)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("user", "u", "", "Learner to reset (required)")
	_ = resetCmd.MarkFlagRequired("user")
}
