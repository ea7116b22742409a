package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newOrderCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Order commands",
	}
	orderCmd.AddCommand(newOrderPlaceCmd(env), newOrderListCmd(env), newOrderStatusCmd(env))
	return orderCmd
}

// parseItem reads "Name" or "Name:qty"
func parseItem(raw string) (models.OrderLine, error) {
	name, qty, found := strings.Cut(raw, ":")
	line := models.OrderLine{Name: strings.TrimSpace(name), Quantity: 1}
	if line.Name == "" {
		return line, fmt.Errorf("item %q has no name", raw)
	}
	if found {
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil || n <= 0 {
			return line, fmt.Errorf("item %q: quantity must be a positive number", raw)
		}
		line.Quantity = n
	}
	return line, nil
}

func newOrderPlaceCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	var (
		items []string
		total float64
	)
	cmd := &cobra.Command{
		Use:     "place",
		Short:   "Place an order",
		Example: `  canteenctl order place --item "Veggie Burger:2" --item Chai --total 190`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			req := models.OrderRequest{TotalPrice: total}
			for _, raw := range items {
				line, err := parseItem(raw)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, line)
			}
			if user, ok := e.Sessions.Get(cmd.Context()); ok {
				req.UserID = user.ID()
				req.UserName = user.Name
				req.UserClass = user.ClassName
			}

			id, err := e.Client.PlaceOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order placed: %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "Item as name[:quantity], repeatable")
	cmd.Flags().Float64Var(&total, "total", 0, "Total price shown to the customer")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newOrderListCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders (staff login required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			orders := e.Client.FetchOrders(cmd.Context())
			if !orders.OK() {
				return fmt.Errorf("failed to load orders: %w", orders.Err)
			}

			data := make([][]string, 0, len(orders.Value))
			for _, o := range orders.Value {
				data = append(data, []string{
					string(o.OrderID),
					o.Timestamp,
					o.UserName,
					o.UserClass,
					o.ItemsSummary(),
					strconv.FormatFloat(o.TotalPrice, 'f', -1, 64),
					string(o.Status),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Time", "Name", "Class", "Items", "Total", "Status"})
			table.SetAutoWrapText(false)
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}

func newOrderStatusCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "status <orderId> <status>",
		Short: "Change an order's status (pending, delivered, cancelled, unable)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			id, status := models.OrderID(args[0]), models.OrderStatus(strings.ToLower(args[1]))
			out := e.Client.UpdateOrderStatus(cmd.Context(), id, status)
			if !out.Value {
				if out.Err != nil {
					return out.Err
				}
				return errors.New("status update was not accepted")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", id, status)
			return nil
		},
	}
}
