package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/spf13/cobra"
)

func newLoginCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	var staffID, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as canteen staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			user, err := e.Client.StaffLogin(cmd.Context(), staffID, password)
			if err != nil {
				return err
			}
			if err := e.Sessions.Save(cmd.Context(), *user); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&staffID, "staff-id", "", "Staff ID (the @domain part may be left out)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("staff-id")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session and end it on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			if err := e.Sessions.ClearSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(env func(*cobra.Command) (*Env, error)) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			user, ok := e.Sessions.Get(cmd.Context())
			if !ok {
				fmt.Fprintln(out, "Not logged in")
			} else {
				fmt.Fprintf(out, "%s (%s)\n", user.ID(), user.Type)
			}
			if !watch {
				return nil
			}

			events, err := e.Sessions.Watch(cmd.Context())
			if err != nil {
				return err
			}
			for ev := range events {
				if ev.User == nil {
					fmt.Fprintln(out, "Not logged in")
					continue
				}
				fmt.Fprintf(out, "%s (%s)\n", ev.User.ID(), ev.User.Type)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and report logins and logouts from other processes")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for STAFF_ACCOUNTS (reads stdin without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := service.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
