package marketapi

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// queryParams serializes the filter, unset fields are omitted entirely
// rather than sent as empty strings.
func (f ProductFilter) queryParams() map[string]string {
	params := map[string]string{}
	if f.Search != "" {
		params["search"] = f.Search
	}
	if f.MinPrice != nil {
		params["min_price"] = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		params["max_price"] = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	if f.TaskName != "" {
		params["task_name"] = f.TaskName
	}
	if f.IsRecommended != nil {
		params["is_recommended"] = strconv.FormatBool(*f.IsRecommended)
	}
	if f.SortBy != "" {
		params["sort_by"] = f.SortBy
	}
	if f.SortOrder != "" {
		params["sort_order"] = f.SortOrder
	}
	if f.Page > 0 {
		params["page"] = strconv.Itoa(f.Page)
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	return params
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	ctx, span := tracer.Start(ctx, "client:Categories")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/categories")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return nil, statusError(res, "failed to fetch categories")
	}

	var body struct {
		Categories []Category `json:"categories"`
	}
	err = decodeBody(res, &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return nil, err
	}
	return body.Categories, nil
}

func (c *Client) Products(ctx context.Context, filter ProductFilter) (PaginatedProducts, error) {
	ctx, span := tracer.Start(ctx, "client:Products")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(filter.queryParams()).
		Get("/products")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return PaginatedProducts{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return PaginatedProducts{}, statusError(res, "failed to fetch products")
	}

	var page PaginatedProducts
	err = decodeBody(res, &page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return PaginatedProducts{}, err
	}
	span.SetAttributes(
		attribute.Int("total_items", page.TotalItems),
		attribute.Int("page", page.Page),
	)
	return page, nil
}

func (c *Client) Product(ctx context.Context, productId string) (Product, error) {
	ctx, span := tracer.Start(ctx, "client:Product")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetPathParam("id", productId).
		Get("/products/{id}")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Product{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return Product{}, statusError(res, "product not found")
	}

	var product Product
	err = decodeBody(res, &product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return Product{}, err
	}
	return product, nil
}
