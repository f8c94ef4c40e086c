package commands

import (
	"fmt"
	"log/slog"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminOpenCmd)
	rootCmd.AddCommand(adminCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Work with the admin surface, which runs its own session.",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log into the admin surface.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		res, err := app.Admin.Login(cmd.Context(), marketapi.LoginRequest{
			Username: args[0],
			Password: args[1],
		})
		if err != nil {
			serviceutil.Fatal("admin login failed", err)
		}
		slog.Info("logged into admin", "username", res.User.Username)
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the admin session token.",
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.Admin.Logout(cmd.Context()); err != nil {
			serviceutil.Fatal("admin logout failed", err)
		}
		slog.Info("logged out of admin")
	},
}

var adminOpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Show where navigating to a path would land given the admin session.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.Admin.CheckAuth(cmd.Context()); err != nil {
			serviceutil.Fatal("failed to verify admin session", err)
		}

		decision := app.Guard.Evaluate(args[0])
		if decision.Allowed() {
			fmt.Printf("%s (%s)\n", args[0], decision.Title)
			return
		}
		fmt.Printf("redirect to %s (%s)\n", decision.RedirectTo, decision.Title)
	},
}
