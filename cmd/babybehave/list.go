package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/babybehave/bdd"
)

func newListCmd() *cobra.Command {
	var humanize bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := exampleSuite()
			out := cmd.OutOrStdout()

			for _, id := range s.IDs() {
				def, _ := s.Get(id)
				name := def().Name()
				if humanize {
					name = bdd.Humanize(name)
				}
				if _, err := fmt.Fprintf(out, "%-28s %s\n", id, name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&humanize, "humanize", false, "print scenario names as sentences")

	return cmd
}
