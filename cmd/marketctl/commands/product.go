package commands

import (
	"fmt"

	"fleamarket-client/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(productCmd)
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show the full detail of one product.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.Detail.LoadProduct(cmd.Context(), args[0]); err != nil {
			serviceutil.Fatal("failed to load product", err)
		}
		fmt.Println(app.Detail.Summary())
	},
}
