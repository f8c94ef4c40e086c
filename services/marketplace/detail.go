package marketplace

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fleamarket-client/lib/htmlutil"
	"fleamarket-client/lib/marketapi"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DetailLoader holds single-product load state, its lifecycle is
// independent from the Browser. There is no caching across ids, every
// call is a fresh fetch.
type DetailLoader struct {
	api *marketapi.Client

	mu      sync.Mutex
	product *marketapi.Product
	loading bool
	err     error
}

func NewDetailLoader(api *marketapi.Client) *DetailLoader {
	return &DetailLoader{api: api}
}

func (d *DetailLoader) Product() *marketapi.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.product
}

func (d *DetailLoader) IsLoading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *DetailLoader) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *DetailLoader) LoadProduct(ctx context.Context, productId string) error {
	ctx, span := tracer.Start(ctx, "detail:LoadProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productId))

	d.mu.Lock()
	d.loading = true
	d.err = nil
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.loading = false
		d.mu.Unlock()
	}()

	product, err := d.api.Product(ctx, productId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load product")
		d.mu.Lock()
		d.err = err
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.product = &product
	d.mu.Unlock()
	return nil
}

// Summary renders the held product as terminal-friendly plain text.
// Scraped titles and seller signatures regularly carry stray HTML.
func (d *DetailLoader) Summary() string {
	product := d.Product()
	if product == nil {
		return ""
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s\n", htmlutil.Textify(product.Info.Title))
	fmt.Fprintf(&out, "price: %s", product.Info.CurrentPrice)
	if product.Info.OriginalPrice != "" {
		fmt.Fprintf(&out, " (was %s)", product.Info.OriginalPrice)
	}
	out.WriteString("\n")
	if product.Info.ShippingArea != "" {
		fmt.Fprintf(&out, "ships from: %s\n", product.Info.ShippingArea)
	}
	if len(product.Info.Tags) > 0 {
		fmt.Fprintf(&out, "tags: %s\n", strings.Join(product.Info.Tags, ", "))
	}
	if product.Seller.Nickname != "" {
		fmt.Fprintf(&out, "seller: %s", htmlutil.Textify(product.Seller.Nickname))
		if product.Seller.CreditRating != "" {
			fmt.Fprintf(&out, " (%s)", product.Seller.CreditRating)
		}
		out.WriteString("\n")
	}
	if product.Seller.Signature != "" {
		fmt.Fprintf(&out, "%s\n", htmlutil.Textify(product.Seller.Signature))
	}
	if product.AiAnalysis != nil && product.AiAnalysis.Reason != "" {
		fmt.Fprintf(&out, "analysis: %s\n", product.AiAnalysis.Reason)
	}
	fmt.Fprintf(&out, "crawled: %s\n", product.CrawlTime)
	fmt.Fprintf(&out, "link: %s\n", product.Info.Link)
	return out.String()
}
