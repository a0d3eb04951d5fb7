package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/padel-tournament/internal/api/response"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round generation commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Schedule every pairing that has no fixture yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.FixturesResponse

			if err := client.Post("/api/v1/rounds", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newFixtureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Fixture and result commands",
	}

	cmd.AddCommand(newFixtureListCmd())
	cmd.AddCommand(newFixtureResultCmd())
	cmd.AddCommand(newFixtureClearCmd())

	return cmd
}

func newFixtureListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/fixtures"
			if status != "" {
				path += "?status=" + url.QueryEscape(status)
			}

			var result response.FixturesResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter: all, pending or completed")

	return cmd
}

func newFixtureResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <fixture-id> <winner-team-id>",
		Short: "Record or correct the winner of a fixture",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtureID, err := parseID("fixture id", args[0])
			if err != nil {
				return err
			}
			winnerID, err := parseID("winner team id", args[1])
			if err != nil {
				return err
			}

			return putResult(cmd, fixtureID, &winnerID)
		},
	}
}

func newFixtureClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <fixture-id>",
		Short: "Clear the result of a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtureID, err := parseID("fixture id", args[0])
			if err != nil {
				return err
			}

			return putResult(cmd, fixtureID, nil)
		},
	}
}

func putResult(cmd *cobra.Command, fixtureID int, winnerID *int) error {
	req := map[string]*int{"winner_id": winnerID}
	var result response.Fixture

	if err := client.Put(fmt.Sprintf("/api/v1/fixtures/%d/result", fixtureID), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}
