package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newHealthCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the canteen backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			health, err := e.Client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Backend", "Status", "Menu items", "Orders"})
			table.Append([]string{
				e.Client.BaseURL(),
				health.Status,
				strconv.Itoa(health.MenuItems),
				strconv.Itoa(health.Orders),
			})
			table.Render()

			if health.Status != "healthy" {
				return fmt.Errorf("backend is %s", health.Status)
			}
			return nil
		},
	}
}
