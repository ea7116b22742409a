package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newMenuCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Menu commands",
	}
	menuCmd.AddCommand(newMenuListCmd(env), newMenuSoldOutCmd(env))
	return menuCmd
}

func newMenuListCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			menu := e.Client.FetchMenu(cmd.Context())
			if !menu.OK() {
				return fmt.Errorf("failed to load menu: %w", menu.Err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Price", "Status"})
			table.SetAutoWrapText(false)
			for _, item := range menu.Value {
				status := "available"
				if item.SoldOut {
					status = "sold out"
				}
				table.Append([]string{item.ID, item.Name, strconv.FormatFloat(item.Price, 'f', -1, 64), status})
			}
			table.Render()
			return nil
		},
	}
}

func newMenuSoldOutCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "sold-out <itemId>",
		Short: "Mark a menu item sold out (or available again with --available)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			itemID := args[0]
			out := e.Client.UpdateMenuItem(cmd.Context(), itemID, !available)
			if !out.Value {
				if out.Err != nil {
					return out.Err
				}
				return errors.New("menu update was not accepted")
			}

			state := "sold out"
			if available {
				state = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", itemID, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "Mark the item available instead")
	return cmd
}
