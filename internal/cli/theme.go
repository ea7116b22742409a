package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Light/dark theme preference",
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			t := e.Theme.Initialize(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Icon(), t)
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			e.Theme.Initialize(cmd.Context())
			t, err := e.Theme.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Icon(), t)
			return nil
		},
	})

	return themeCmd
}
