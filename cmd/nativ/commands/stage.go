package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage [platforms...]",
		Short: "Build and copy native artifacts into the artifact repository",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Stage(cmd.Context(), args)
		},
	}
}
