package cmd

import (
	"strings"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	"github.com/spf13/cobra"
)

// newOperationCommand builds the subcommand for one date operation
func newOperationCommand(opts *options, op service.Operation) *cobra.Command {
	usage := make([]string, len(op.Args))
	for i, a := range op.Args {
		if i >= op.MinArgs() {
			usage[i] = "[" + a + "]"
		} else {
			usage[i] = "<" + a + ">"
		}
	}

	return &cobra.Command{
		Use:   op.Command + " " + strings.Join(usage, " "),
		Short: op.Description,
		Long:  op.Description + ".\n\nOperation name: " + op.Name,
		Args:  cobra.RangeArgs(op.MinArgs(), op.MaxArgs()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, opts, op.Name, args)
		},
	}
}

func runOperation(cmd *cobra.Command, opts *options, name string, args []string) error {
	b, err := opts.backend(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	res, err := b.Invoke(cmd.Context(), name, args...)
	if err != nil {
		if !service.IsInvalidInput(err) && !service.IsUnknownOperation(err) {
			return err
		}
		if opts.out.json {
			_ = opts.out.JSON(service.Response{
				Operation: name,
				Error:     err.Error(),
				Code:      string(mdwerror.GetCode(err)),
			})
		} else {
			opts.out.Error(err.Error())
		}
		return errReported
	}

	if opts.out.json {
		return opts.out.JSON(res)
	}
	opts.out.Value(res.Value)
	return nil
}
