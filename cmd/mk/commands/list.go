package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, t := range targets {
				marker := ""
				if !t.Phony {
					marker = " (file)"
				}
				fmt.Fprintf(w, "%s%s\n", t.Name.String(), marker)
				for _, line := range t.Commands {
					fmt.Fprintf(w, "\t%s\n", line)
				}
				if len(t.Prerequisites) > 0 {
					names := make([]string, len(t.Prerequisites))
					for i, p := range t.Prerequisites {
						names[i] = p.String()
					}
					fmt.Fprintf(w, "\tneeds: %s\n", strings.Join(names, ", "))
				}
			}
			return nil
		},
	}
}
