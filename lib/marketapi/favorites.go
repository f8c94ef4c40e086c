package marketapi

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (c *Client) Favorites(ctx context.Context, page, limit int) (PaginatedFavorites, error) {
	ctx, span := tracer.Start(ctx, "client:Favorites")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
		}).
		Get("/favorites")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return PaginatedFavorites{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return PaginatedFavorites{}, statusError(res, "failed to fetch favorites")
	}

	var favorites PaginatedFavorites
	err = decodeBody(res, &favorites)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return PaginatedFavorites{}, err
	}
	return favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, req FavoriteRequest) (Favorite, error) {
	ctx, span := tracer.Start(ctx, "client:AddFavorite")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", req.ProductId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		Post("/favorites")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Favorite{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return Favorite{}, statusError(res, "failed to add favorite")
	}

	var body struct {
		Message  string   `json:"message"`
		Favorite Favorite `json:"favorite"`
	}
	err = decodeBody(res, &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return Favorite{}, err
	}
	return body.Favorite, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productId string) error {
	ctx, span := tracer.Start(ctx, "client:RemoveFavorite")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetPathParam("id", productId).
		Delete("/favorites/{id}")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return statusError(res, "failed to remove favorite")
	}
	return nil
}

type ToggleFavoriteResponse struct {
	Message  string    `json:"message"`
	IsAdded  bool      `json:"is_added"`
	Favorite *Favorite `json:"favorite,omitempty"`
}

func (c *Client) ToggleFavorite(ctx context.Context, req FavoriteRequest) (ToggleFavoriteResponse, error) {
	ctx, span := tracer.Start(ctx, "client:ToggleFavorite")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", req.ProductId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		Post("/favorites/toggle")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return ToggleFavoriteResponse{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return ToggleFavoriteResponse{}, statusError(res, "failed to toggle favorite")
	}

	var body ToggleFavoriteResponse
	err = decodeBody(res, &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return ToggleFavoriteResponse{}, err
	}
	return body, nil
}
