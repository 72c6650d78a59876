package cli

import (
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {

	root := &cobra.Command{
		Use:           "peponi-admin",
		Short:         "Peponi back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		ServeCmd(),
		SeedCmd(),
	)

	return root
}
