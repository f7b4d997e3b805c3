package cmd

import (
	"fmt"

	"github.com/msto63/mdw-dateutil/pkg/core/version"
	"github.com/spf13/cobra"
)

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if opts.out.json {
				return opts.out.JSON(info)
			}

			p := opts.out
			fmt.Fprintf(p.out, "dateutil %s\n", p.styles.value.Render("v"+info.Library))
			fmt.Fprintf(p.out, "  %s %s %s\n", p.styles.label.Render("API:       "), info.API, info.Service)
			fmt.Fprintf(p.out, "  %s %s\n", p.styles.label.Render("Git Commit:"), info.Commit)
			fmt.Fprintf(p.out, "  %s %s\n", p.styles.label.Render("Build Date:"), info.BuildDate)
			fmt.Fprintf(p.out, "  %s %s\n", p.styles.label.Render("Go Version:"), info.GoVersion)
			fmt.Fprintf(p.out, "  %s %s\n", p.styles.label.Render("OS/Arch:   "), info.Platform)
			return nil
		},
	}
}
