package cli

import (
	"github.com/spf13/cobra"

	"github.com/zerocode/landing/internal/script"
)

func scriptCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the resolved builder script as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(path)
			if err != nil {
				return err
			}

			out, err := sc.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "YAML file replacing parts of the built-in script")
	return cmd
}
