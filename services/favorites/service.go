// Package favorites performs operations against the user-to-product
// bookmark relation, gated by the session store.
package favorites

import (
	"context"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/services/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/favorites")

type Service struct {
	api     *marketapi.Client
	session *session.Store
}

func NewService(api *marketapi.Client, sess *session.Store) *Service {
	return &Service{api: api, session: sess}
}

func (s *Service) Add(ctx context.Context, req marketapi.FavoriteRequest) (marketapi.Favorite, error) {
	ctx, span := tracer.Start(ctx, "service:Add")
	defer span.End()

	favorite, err := s.api.AddFavorite(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to add favorite")
		return marketapi.Favorite{}, err
	}
	return favorite, nil
}

// Remove issues the removal without inspecting prior state. A missing
// favorite propagates as a not-found error.
func (s *Service) Remove(ctx context.Context, productId string) error {
	ctx, span := tracer.Start(ctx, "service:Remove")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productId))

	err := s.api.RemoveFavorite(ctx, productId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to remove favorite")
		return err
	}
	return nil
}

type ToggleResult struct {
	IsFavorited bool
	// present only when IsFavorited is true
	Favorite *marketapi.Favorite
}

// Toggle flips the favorite state of a product. It refuses to touch the
// network without a loaded user, an unauthenticated toggle would only
// come back as an ambiguous server error.
func (s *Service) Toggle(ctx context.Context, req marketapi.FavoriteRequest) (ToggleResult, error) {
	ctx, span := tracer.Start(ctx, "service:Toggle")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", req.ProductId))

	if !s.session.IsAuthenticated() {
		span.SetStatus(codes.Error, "no current user")
		return ToggleResult{}, marketapi.ErrAuthRequired
	}

	res, err := s.api.ToggleFavorite(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to toggle favorite")
		return ToggleResult{}, err
	}
	return ToggleResult{
		IsFavorited: res.IsAdded,
		Favorite:    res.Favorite,
	}, nil
}

// List is a pure passthrough, the server is always the source of truth.
func (s *Service) List(ctx context.Context, page, limit int) (marketapi.PaginatedFavorites, error) {
	ctx, span := tracer.Start(ctx, "service:List")
	defer span.End()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	favorites, err := s.api.Favorites(ctx, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list favorites")
		return marketapi.PaginatedFavorites{}, err
	}
	return favorites, nil
}
