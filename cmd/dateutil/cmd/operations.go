package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newOperationsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.backend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			ops, err := b.ListOperations(cmd.Context())
			if err != nil {
				return err
			}

			if opts.out.json {
				return opts.out.JSON(ops)
			}

			rows := make([][]string, len(ops))
			for i, op := range ops {
				rows[i] = []string{op.Name, op.Command, strings.Join(op.Args, " "), op.Description}
			}
			opts.out.Table([]string{"OPERATION", "COMMAND", "ARGS", "DESCRIPTION"}, rows)
			return nil
		},
	}
}
