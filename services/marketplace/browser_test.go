package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// productBackend serves a fixed catalog sliced by page/limit, the shape
// the real backend produces.
type productBackend struct {
	totalItems int

	calls     atomic.Int64
	lastQuery atomic.Value
	// when set, the handler blocks until the channel closes
	block atomic.Pointer[chan struct{}]
}

func (b *productBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/public/products", func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		b.lastQuery.Store(r.URL.RawQuery)
		if gate := b.block.Load(); gate != nil {
			<-*gate
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = 20
		}

		start := (page - 1) * limit
		count := limit
		if start >= b.totalItems {
			count = 0
		} else if start+count > b.totalItems {
			count = b.totalItems - start
		}

		items := make([]marketapi.Product, count)
		for i := range items {
			items[i] = marketapi.Product{
				Id:       fmt.Sprintf("watch_%d", start+i+1),
				TaskName: "watch",
				Info: marketapi.ProductInfo{
					Title:        fmt.Sprintf("item %d", start+i+1),
					CurrentPrice: "100",
					CommodityId:  strconv.Itoa(start + i + 1),
					Link:         fmt.Sprintf("https://example.com/item/%d", start+i+1),
				},
			}
		}

		totalPages := (b.totalItems + limit - 1) / limit
		json.NewEncoder(w).Encode(marketapi.PaginatedProducts{
			Items:      items,
			TotalItems: b.totalItems,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		})
	})
	mux.HandleFunc("GET /api/public/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"categories": []marketapi.Category{
				{Name: "watch", Public: true},
				{Name: "camera", Public: true},
			},
		})
	})
	return mux
}

func setupBrowser(t *testing.T, backend *productBackend) *Browser {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/marketplace"})
	t.Cleanup(cleanup)

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	api := marketapi.NewClient(marketapi.ClientOptions{BaseUrl: server.URL})
	return NewBrowser(api)
}

func TestResetLoadReplaces(t *testing.T) {
	backend := &productBackend{totalItems: 45}
	browser := setupBrowser(t, backend)
	ctx := context.Background()

	require.NoError(t, browser.UpdateFilters(marketapi.ProductFilter{Search: "phone"}))
	require.NoError(t, browser.LoadProducts(ctx, true))

	require.Len(t, browser.Products(), 20)
	require.Equal(t, 45, browser.TotalItems())
	require.Equal(t, 3, browser.TotalPages())
	require.Equal(t, 1, browser.CurrentPage())
	require.True(t, browser.HasMore())

	// a second reset load replaces rather than extends
	require.NoError(t, browser.LoadProducts(ctx, true))
	require.Len(t, browser.Products(), 20)
}

func TestLoadMoreAppendsNextPage(t *testing.T) {
	backend := &productBackend{totalItems: 45}
	browser := setupBrowser(t, backend)
	ctx := context.Background()

	require.NoError(t, browser.LoadProducts(ctx, true))
	require.NoError(t, browser.LoadMore(ctx))

	products := browser.Products()
	require.Len(t, products, 40)
	// order preserved: page 1 first, page 2 concatenated after
	require.Equal(t, "watch_1", products[0].Id)
	require.Equal(t, "watch_21", products[20].Id)
	require.Equal(t, 2, browser.CurrentPage())
	require.Contains(t, backend.lastQuery.Load().(string), "page=2")

	require.NoError(t, browser.LoadMore(ctx))
	require.Len(t, browser.Products(), 45)
	require.False(t, browser.HasMore())
}

func TestLoadMoreNoopOnLastPage(t *testing.T) {
	backend := &productBackend{totalItems: 15}
	browser := setupBrowser(t, backend)
	ctx := context.Background()

	require.NoError(t, browser.LoadProducts(ctx, true))
	require.False(t, browser.HasMore())
	callsBefore := backend.calls.Load()

	require.NoError(t, browser.LoadMore(ctx))
	require.Equal(t, callsBefore, backend.calls.Load())
	require.Len(t, browser.Products(), 15)
}

func TestLoadMoreNoopWhileLoadInFlight(t *testing.T) {
	backend := &productBackend{totalItems: 45}
	browser := setupBrowser(t, backend)
	ctx := context.Background()

	// seed paging state, then gate the next request
	require.NoError(t, browser.LoadProducts(ctx, true))
	gate := make(chan struct{})
	backend.block.Store(&gate)

	done := make(chan error, 1)
	go func() {
		done <- browser.LoadProducts(ctx, true)
	}()
	require.Eventually(t, browser.IsLoading, time.Second, time.Millisecond)

	require.NoError(t, browser.LoadMore(ctx))
	require.EqualValues(t, 2, backend.calls.Load())

	close(gate)
	require.NoError(t, <-done)
}

func TestLoadFailureRecordedAndReturned(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/marketplace"})
	t.Cleanup(cleanup)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	browser := NewBrowser(marketapi.NewClient(marketapi.ClientOptions{BaseUrl: server.URL}))
	err := browser.LoadProducts(context.Background(), true)
	require.Error(t, err)
	require.Equal(t, err, browser.Err())
	require.False(t, browser.IsLoading())

	// a later successful load clears the recorded error
	backend := &productBackend{totalItems: 5}
	good := setupBrowser(t, backend)
	require.NoError(t, good.LoadProducts(context.Background(), true))
	require.NoError(t, good.Err())
}

func TestUpdateFiltersMergesWithoutLoading(t *testing.T) {
	backend := &productBackend{totalItems: 45}
	browser := setupBrowser(t, backend)

	minPrice := 50.0
	require.NoError(t, browser.UpdateFilters(marketapi.ProductFilter{Search: "phone"}))
	require.NoError(t, browser.UpdateFilters(marketapi.ProductFilter{MinPrice: &minPrice}))

	filters := browser.Filters()
	require.Equal(t, "phone", filters.Search)
	require.NotNil(t, filters.MinPrice)
	require.Equal(t, 50.0, *filters.MinPrice)
	// untouched defaults survive the merges
	require.Equal(t, "crawl_time", filters.SortBy)
	require.Equal(t, 20, filters.Limit)

	require.EqualValues(t, 0, backend.calls.Load())
}

func TestResetFiltersRestoresDefaults(t *testing.T) {
	backend := &productBackend{totalItems: 45}
	browser := setupBrowser(t, backend)

	maxPrice := 900.0
	require.NoError(t, browser.UpdateFilters(marketapi.ProductFilter{
		Search:   "phone",
		MaxPrice: &maxPrice,
		TaskName: "watch",
	}))
	browser.ResetFilters()

	if diff := cmp.Diff(DefaultFilter(), browser.Filters()); diff != "" {
		t.Fatalf("filters not back at defaults (-want +got):\n%s", diff)
	}
	require.EqualValues(t, 0, backend.calls.Load())
}

func TestLoadCategoriesBestEffort(t *testing.T) {
	backend := &productBackend{totalItems: 5}
	browser := setupBrowser(t, backend)
	ctx := context.Background()

	browser.LoadCategories(ctx)
	require.Len(t, browser.Categories(), 2)

	// a failing refresh keeps the previous list
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(failing.Close)
	browser.api = marketapi.NewClient(marketapi.ClientOptions{BaseUrl: failing.URL})

	browser.LoadCategories(ctx)
	require.Len(t, browser.Categories(), 2)
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	backend := &productBackend{totalItems: 5}
	browser := setupBrowser(t, backend)

	var notified int
	browser.Revision().Subscribe(func(uint64) { notified++ })

	require.NoError(t, browser.UpdateFilters(marketapi.ProductFilter{Search: "x"}))
	require.NoError(t, browser.LoadProducts(context.Background(), true))
	require.GreaterOrEqual(t, notified, 2)
}

func TestMatchCategory(t *testing.T) {
	backend := &productBackend{totalItems: 5}
	browser := setupBrowser(t, backend)
	browser.LoadCategories(context.Background())

	name, ok := browser.MatchCategory("watch")
	require.True(t, ok)
	require.Equal(t, "watch", name)

	name, ok = browser.MatchCategory("camra")
	require.True(t, ok)
	require.Equal(t, "camera", name)

	_, ok = browser.MatchCategory("totally unrelated")
	require.False(t, ok)
}
