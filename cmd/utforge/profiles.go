package main

import (
	"github.com/spf13/cobra"
)

func newProfilesCommand(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Print the header tables of every persona and the platform hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newProfilesView()
			if err != nil {
				return err
			}
			return render(c.out, output, v)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
