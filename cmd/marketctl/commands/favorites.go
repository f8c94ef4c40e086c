package commands

import (
	"fmt"
	"log/slog"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var favoritesPage *int
var favoritesLimit *int

func init() {
	favoritesPage = favoritesListCmd.Flags().Int("page", 1, "Page of the favorites list to show.")
	favoritesLimit = favoritesListCmd.Flags().Int("limit", 20, "Favorites per page.")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd)
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorites list of the logged-in account.",
}

// favoriteRequest fetches the product so the server-side favorite
// carries its title, price and link.
func favoriteRequest(cmd *cobra.Command, app *App, productId string) marketapi.FavoriteRequest {
	product, err := app.API.Product(cmd.Context(), productId)
	if err != nil {
		serviceutil.Fatal("failed to load product", err)
	}
	return marketapi.FavoriteRequest{
		ProductId:    product.Id,
		TaskName:     product.TaskName,
		ProductTitle: product.Info.Title,
		Price:        product.Info.CurrentPrice,
		ImageUrl:     product.Info.MainImage,
		ProductLink:  product.Info.Link,
	}
}

func requireUser(cmd *cobra.Command, app *App) {
	if err := app.User.CheckAuth(cmd.Context()); err != nil {
		serviceutil.Fatal("failed to verify session", err)
	}
	if !app.User.IsAuthenticated() {
		serviceutil.Fatal("not logged in", fmt.Errorf("run 'marketctl login' first"))
	}
}

var favoritesListCmd = &cobra.Command{
	Use:   "list [--page <n>] [--limit <n>]",
	Short: "List favorited products.",
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())
		requireUser(cmd, app)

		res, err := app.Favorites.List(cmd.Context(), *favoritesPage, *favoritesLimit)
		if err != nil {
			serviceutil.Fatal("failed to list favorites", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"product", "title", "price", "added"})
		for _, f := range res.Items {
			t.AppendRow(table.Row{f.ProductId, f.ProductTitle, f.Price, f.CreatedAt})
		}
		t.Render()
		fmt.Printf("%d favorites total\n", res.Total)
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <product id>",
	Short: "Favorite a product.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())
		requireUser(cmd, app)

		favorite, err := app.Favorites.Add(cmd.Context(), favoriteRequest(cmd, app, args[0]))
		if err != nil {
			serviceutil.Fatal("failed to add favorite", err)
		}
		slog.Info("favorited", "product", favorite.ProductId, "title", favorite.ProductTitle)
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <product id>",
	Short: "Remove a product from the favorites list.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())
		requireUser(cmd, app)

		if err := app.Favorites.Remove(cmd.Context(), args[0]); err != nil {
			serviceutil.Fatal("failed to remove favorite", err)
		}
		slog.Info("removed favorite", "product", args[0])
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <product id>",
	Short: "Favorite a product, or unfavorite it when already favorited.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())
		requireUser(cmd, app)

		res, err := app.Favorites.Toggle(cmd.Context(), favoriteRequest(cmd, app, args[0]))
		if err != nil {
			serviceutil.Fatal("failed to toggle favorite", err)
		}
		if res.IsFavorited {
			slog.Info("favorited", "product", args[0])
		} else {
			slog.Info("removed favorite", "product", args[0])
		}
	},
}
