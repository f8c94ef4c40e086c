// Package marketplace owns the paginated, filtered product listing state
// and the single-product detail state.
package marketplace

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/observable"

	"dario.cat/mergo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/marketplace")

// DefaultFilter returns the filter state a fresh browser starts with.
func DefaultFilter() marketapi.ProductFilter {
	return marketapi.ProductFilter{
		SortBy:    "crawl_time",
		SortOrder: "desc",
		Page:      1,
		Limit:     20,
	}
}

type Browser struct {
	api *marketapi.Client

	mu         sync.Mutex
	filters    marketapi.ProductFilter
	products   []marketapi.Product
	categories []marketapi.Category
	totalItems int
	totalPages int
	// reported by the server, authoritative over the requested page in
	// case of server-side clamping
	currentPage int
	loading     bool
	err         error

	// bumped on every state mutation so UIs can re-render
	revision *observable.Value[uint64]
}

func NewBrowser(api *marketapi.Client) *Browser {
	return &Browser{
		api:      api,
		filters:  DefaultFilter(),
		revision: observable.NewValue[uint64](0),
	}
}

func (b *Browser) notify() {
	b.revision.Set(b.revision.Get() + 1)
}

// Revision exposes a change counter, subscribe to re-render on mutation.
func (b *Browser) Revision() *observable.Value[uint64] {
	return b.revision
}

func (b *Browser) Products() []marketapi.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.products)
}

func (b *Browser) Categories() []marketapi.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.categories)
}

func (b *Browser) Filters() marketapi.ProductFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

func (b *Browser) TotalItems() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalItems
}

func (b *Browser) TotalPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalPages
}

func (b *Browser) CurrentPage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentPage
}

func (b *Browser) IsLoading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *Browser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Browser) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentPage < b.totalPages
}

// LoadProducts fetches a page using the current filter set. A reset load
// (resetPage true) starts back at page 1 and replaces the collection, an
// append load concatenates the response onto what is already loaded.
//
// Known gap: nothing guards against a stale response resolving after a
// newer request, the last response to arrive wins the visible state.
func (b *Browser) LoadProducts(ctx context.Context, resetPage bool) error {
	ctx, span := tracer.Start(ctx, "browser:LoadProducts")
	defer span.End()
	span.SetAttributes(attribute.Bool("reset_page", resetPage))

	b.mu.Lock()
	b.loading = true
	b.err = nil
	if resetPage {
		b.filters.Page = 1
	}
	filter := b.filters
	b.mu.Unlock()
	b.notify()

	// the loading flag is cleared on every path out of here
	defer func() {
		b.mu.Lock()
		b.loading = false
		b.mu.Unlock()
		b.notify()
	}()

	page, err := b.api.Products(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load products")
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	if resetPage {
		b.products = page.Items
	} else {
		b.products = append(b.products, page.Items...)
	}
	b.totalItems = page.TotalItems
	b.totalPages = page.TotalPages
	b.currentPage = page.Page
	b.mu.Unlock()

	span.SetAttributes(
		attribute.Int("page", page.Page),
		attribute.Int("total_pages", page.TotalPages),
	)
	return nil
}

// LoadMore appends the next page. It is a no-op when the last page is
// already loaded or a load is in flight, which is the sole guard against
// duplicate overlapping page fetches.
func (b *Browser) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if b.currentPage >= b.totalPages || b.loading {
		b.mu.Unlock()
		return nil
	}
	b.filters.Page = b.currentPage + 1
	b.mu.Unlock()

	return b.LoadProducts(ctx, false)
}

// UpdateFilters shallow-merges set fields of patch into the current
// filter. No load is triggered, callers batch several edits and fetch
// once. Clearing a field back to "match anything" goes through
// ResetFilters.
func (b *Browser) UpdateFilters(patch marketapi.ProductFilter) error {
	b.mu.Lock()
	err := mergo.Merge(&b.filters, patch, mergo.WithOverride)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	b.notify()
	return nil
}

// ResetFilters restores the defaults verbatim without triggering a load.
func (b *Browser) ResetFilters() {
	b.mu.Lock()
	b.filters = DefaultFilter()
	b.mu.Unlock()
	b.notify()
}

// LoadCategories refreshes the advisory category list. Failures are
// logged, not surfaced, and leave the previous list untouched.
func (b *Browser) LoadCategories(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "browser:LoadCategories")
	defer span.End()

	categories, err := b.api.Categories(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load categories")
		slog.WarnContext(ctx, "failed to load categories", "err", err)
		return
	}

	b.mu.Lock()
	b.categories = categories
	b.mu.Unlock()
	b.notify()
}
