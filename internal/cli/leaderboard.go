package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the rating leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			path := "/api/v1/leaderboard"
			if size > 0 {
				path += "?size=" + strconv.Itoa(size)
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(&result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Maximum number of entries (server default if unset)")

	return cmd
}
