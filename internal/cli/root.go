// Package cli wires the landing command line.
package cli

import (
	"io/fs"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the landing command tree. static holds the assets
// served under /static.
func NewRootCmd(static fs.FS) *cobra.Command {
	root := &cobra.Command{
		Use:           "landing",
		Short:         "Zero-Code AI Builder landing page",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(serveCmd(static))
	root.AddCommand(playCmd())
	root.AddCommand(scriptCmd())

	return root
}

// Execute runs the root command.
func Execute(static fs.FS) error {
	return NewRootCmd(static).Execute()
}
