package cli

import (
	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players [id]",
		Short: "List online players or show one player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var result Player
				if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
					out.PrintError(err)
					return err
				}
				out.Print(&result)
				return nil
			}

			var result PlayerList
			if err := client.Get("/api/v1/players", &result); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(&result)
			return nil
		},
	}
}
