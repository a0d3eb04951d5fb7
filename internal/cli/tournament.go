package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/padel-tournament/internal/api/response"
)

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the ranked standings table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.StandingsResponse

			if err := client.Get("/api/v1/standings", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show tournament overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DashboardResponse

			if err := client.Get("/api/v1/dashboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all teams and fixtures (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every team and fixture; pass --yes to confirm")
			}

			if err := client.Delete("/api/v1/tournament"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Tournament reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}
