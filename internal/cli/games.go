package cli

import (
	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games [id]",
		Short: "List games in progress or show one game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var result GameSummary
				if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
					out.PrintError(err)
					return err
				}
				out.Print(&result)
				return nil
			}

			var result GameList
			if err := client.Get("/api/v1/games", &result); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(&result)
			return nil
		},
	}
}
