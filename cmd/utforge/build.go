package main

import (
	"github.com/spf13/cobra"
)

func newBuildCommand(c *cli) *cobra.Command {
	var (
		rf     requestFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "build METHOD URL",
		Short: "Print the composed request without sending it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := c.factory(nil)
			if err != nil {
				return err
			}
			f, err := rf.forge(factory, c.cfg, args[0], args[1])
			if err != nil {
				return err
			}
			req, err := f.Build()
			if err != nil {
				return err
			}
			return render(c.out, output, newRequestView(req))
		},
	}
	rf.bind(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
