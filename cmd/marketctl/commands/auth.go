package commands

import (
	"fmt"
	"log/slog"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var registerEmail *string

func init() {
	registerEmail = registerCmd.Flags().String("email", "", "The email address to register with.")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log into a marketplace account and persist the session token.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		res, err := app.User.Login(cmd.Context(), marketapi.LoginRequest{
			Username: args[0],
			Password: args[1],
		})
		if err != nil {
			serviceutil.Fatal("login failed", err)
		}
		slog.Info("logged in", "username", res.User.Username, "role", res.User.Role)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <password> [--email <address>]",
	Short: "Create a marketplace account, the new session is active immediately.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		res, err := app.User.Register(cmd.Context(), marketapi.RegisterRequest{
			Username: args[0],
			Password: args[1],
			Email:    *registerEmail,
		})
		if err != nil {
			serviceutil.Fatal("registration failed", err)
		}
		slog.Info("registered", "username", res.User.Username)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the current session token.",
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.User.Logout(cmd.Context()); err != nil {
			serviceutil.Fatal("logout failed", err)
		}
		slog.Info("logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the persisted session token.",
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.User.CheckAuth(cmd.Context()); err != nil {
			serviceutil.Fatal("failed to verify session", err)
		}
		user := app.User.User()
		if user == nil {
			fmt.Println("not logged in")
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"id", "username", "email", "role"})
		t.AppendRow(table.Row{user.Id, user.Username, user.Email, user.Role})
		t.Render()
	},
}
