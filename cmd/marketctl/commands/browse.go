package commands

import (
	"fmt"
	"log/slog"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/serviceutil"
	"fleamarket-client/services/marketplace"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var browseFlags struct {
	search      string
	minPrice    float64
	maxPrice    float64
	task        string
	recommended bool
	sortBy      string
	sortOrder   string
	limit       int
	all         bool
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseFlags.search, "search", "", "Filter products by a search term.")
	f.Float64Var(&browseFlags.minPrice, "min-price", 0, "Lowest price to include.")
	f.Float64Var(&browseFlags.maxPrice, "max-price", 0, "Highest price to include.")
	f.StringVar(&browseFlags.task, "task", "", "Only products from this scrape task.")
	f.BoolVar(&browseFlags.recommended, "recommended", false, "Only products the analysis marked as recommended.")
	f.StringVar(&browseFlags.sortBy, "sort", "", "Sort field, e.g. crawl_time or price.")
	f.StringVar(&browseFlags.sortOrder, "order", "", "Sort direction, asc or desc.")
	f.IntVar(&browseFlags.limit, "limit", 0, "Products per page.")
	f.BoolVar(&browseFlags.all, "all", false, "Keep fetching pages until the catalog is exhausted.")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func browseFilter(cmd *cobra.Command) marketapi.ProductFilter {
	patch := marketapi.ProductFilter{
		Search:    browseFlags.search,
		TaskName:  browseFlags.task,
		SortBy:    browseFlags.sortBy,
		SortOrder: browseFlags.sortOrder,
		Limit:     browseFlags.limit,
	}
	if cmd.Flags().Changed("min-price") {
		patch.MinPrice = &browseFlags.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		patch.MaxPrice = &browseFlags.maxPrice
	}
	if cmd.Flags().Changed("recommended") {
		patch.IsRecommended = &browseFlags.recommended
	}
	return patch
}

var browseCmd = &cobra.Command{
	Use:   "browse [flags]",
	Short: "List products from the scraped catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		if err := app.Browser.UpdateFilters(browseFilter(cmd)); err != nil {
			serviceutil.Fatal("invalid filters", err)
		}
		if err := app.Browser.LoadProducts(cmd.Context(), true); err != nil {
			serviceutil.Fatal("failed to load products", err)
		}
		if browseFlags.all {
			for app.Browser.HasMore() {
				if err := app.Browser.LoadMore(cmd.Context()); err != nil {
					serviceutil.Fatal("failed to load more products", err)
				}
			}
		}

		renderProducts(app.Browser)
	},
}

func renderProducts(browser *marketplace.Browser) {
	products := browser.Products()

	t := newTable()
	t.AppendHeader(table.Row{"id", "title", "price", "task", "crawled"})
	for _, p := range products {
		t.AppendRow(table.Row{p.Id, p.Info.Title, p.Info.CurrentPrice, p.TaskName, p.CrawlTime})
	}
	t.Render()

	fmt.Printf(
		"page %d of %d, showing %d of %d products\n",
		browser.CurrentPage(), browser.TotalPages(),
		len(products), browser.TotalItems(),
	)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [name]",
	Short: "List scrape categories, or resolve a name to its closest match.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := setup(cmd.Context())

		app.Browser.LoadCategories(cmd.Context())
		categories := app.Browser.Categories()
		if len(categories) == 0 {
			slog.Warn("no categories available")
			return
		}

		if len(args) == 1 {
			match, ok := app.Browser.MatchCategory(args[0])
			if !ok {
				fmt.Printf("no category close to %q\n", args[0])
				return
			}
			fmt.Println(match)
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"name", "public"})
		for _, c := range categories {
			t.AppendRow(table.Row{c.Name, c.Public})
		}
		t.Render()
	},
}
