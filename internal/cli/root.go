package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. env is resolved lazily so that help
// output works without a reachable backend.
func NewRootCmd(env func(cmd *cobra.Command) (*Env, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "canteenctl",
		Short:         "Order from and run the school canteen",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMenuCmd(env),
		newOrderCmd(env),
		newLoginCmd(env),
		newLogoutCmd(env),
		newWhoamiCmd(env),
		newThemeCmd(env),
		newHealthCmd(env),
		newHashPasswordCmd(),
	)
	return root
}
