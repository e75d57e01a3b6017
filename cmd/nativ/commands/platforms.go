package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the platforms the project can build for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platforms, err := c.app.Platforms()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tARCH\tOS")
			for _, p := range platforms {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Arch, p.OS)
			}
			return w.Flush()
		},
	}
}
