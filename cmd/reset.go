package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved study plan",
	Long:  "Deletes the saved plan snapshot for the current learner. With --names the assistant and learner names are cleared too, so the next start runs setup again.",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _ := cmd.Flags().GetBool("names")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		profile, err := s.ProfileRepo().Get(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if profile == nil {
			fmt.Println("Nothing to reset.")
			return nil
		}

		if err := s.SnapshotRepo().Delete(ctx, profile.UserKey()); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		fmt.Println("Saved plan cleared.")

		if names {
			if err := s.ProfileRepo().ClearNames(ctx); err != nil {
				return fmt.Errorf("clear names: %w", err)
			}
			fmt.Println("Names cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("names", false, "Also clear the assistant and learner names")
}
