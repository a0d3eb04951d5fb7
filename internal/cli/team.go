package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/padel-tournament/internal/api/response"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team registration commands",
	}

	cmd.AddCommand(newTeamAddCmd())
	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamRemoveCmd())

	return cmd
}

func newTeamAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <player1> <player2>",
		Short: "Register a team of two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player1": args[0],
				"player2": args[1],
			}
			var result response.Team

			if err := client.Post("/api/v1/teams", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TeamsResponse

			if err := client.Get("/api/v1/teams", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTeamRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team-id>",
		Short: "Remove a team and all of its fixtures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("team id", args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/teams/%d", id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Team %d removed", id))
			return nil
		},
	}
}

// parseID parses a positive integer argument
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, arg)
	}
	return id, nil
}
