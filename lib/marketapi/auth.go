package marketapi

import (
	"context"

	"go.opentelemetry.io/otel/codes"
)

func (c *Client) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	ctx, span := tracer.Start(ctx, "client:Register")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		Post("/register")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return TokenResponse{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return TokenResponse{}, statusError(res, "registration failed")
	}

	var token TokenResponse
	err = decodeBody(res, &token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return TokenResponse{}, err
	}
	return token, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		Post("/login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return TokenResponse{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return TokenResponse{}, statusError(res, "login failed")
	}

	var token TokenResponse
	err = decodeBody(res, &token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return TokenResponse{}, err
	}
	return token, nil
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	ctx, span := tracer.Start(ctx, "client:CurrentUser")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/me")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return User{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return User{}, statusError(res, "failed to fetch user")
	}

	var user User
	err = decodeBody(res, &user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return User{}, err
	}
	return user, nil
}

// Logout tells the backend to drop the session. Callers treat this as
// best-effort, local state is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Logout")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Post("/logout")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "bad status")
		return statusError(res, "logout failed")
	}
	return nil
}
