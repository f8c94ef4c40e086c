// Package session owns the authentication state for one session domain.
// The process runs two independent stores, one for marketplace end-users
// and one for the admin surface, each with its own persisted token.
package session

import (
	"context"
	"log/slog"
	"sync"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/observable"
	"fleamarket-client/lib/tokenstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/session")

const (
	NamespaceUser  = "user"
	NamespaceAdmin = "admin"
)

type Options struct {
	API    *marketapi.Client
	Tokens *tokenstore.Store
	// persisted-token key, NamespaceUser or NamespaceAdmin
	Namespace string
}

type Store struct {
	opts Options

	// guards token, and makes token+user updates atomic so a login
	// response can never mix with another's
	mu    sync.Mutex
	token string

	user *observable.Value[*marketapi.User]
}

// New loads the persisted token for the namespace. The user identity is
// not fetched here, call CheckAuth or LoadCurrentUser for that.
func New(ctx context.Context, opts Options) (*Store, error) {
	token, err := opts.Tokens.Get(ctx, opts.Namespace)
	if err != nil {
		return nil, err
	}
	return &Store{
		opts:  opts,
		token: token,
		user:  observable.NewValue[*marketapi.User](nil),
	}, nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken stores the token in memory and on disk, an empty token
// removes the persisted copy. The token shape is not validated.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setTokenLocked(ctx, token)
}

func (s *Store) setTokenLocked(ctx context.Context, token string) error {
	s.token = token
	if token == "" {
		return s.opts.Tokens.Delete(ctx, s.opts.Namespace)
	}
	return s.opts.Tokens.Set(ctx, s.opts.Namespace, token)
}

func (s *Store) User() *marketapi.User {
	return s.user.Get()
}

// UserChanges exposes the identity as an observable so UIs can re-render
// on login/logout.
func (s *Store) UserChanges() *observable.Value[*marketapi.User] {
	return s.user
}

func (s *Store) IsAuthenticated() bool {
	return s.user.Get() != nil
}

// applySession installs token and user from one server response under a
// single lock acquisition. Racing logins are last-writer-wins, a hybrid
// of two responses cannot occur. Subscribers are notified while the lock
// is held and must not call back into the store.
func (s *Store) applySession(ctx context.Context, token string, user *marketapi.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.setTokenLocked(ctx, token)
	s.user.Set(user)
	return err
}

func (s *Store) Login(ctx context.Context, req marketapi.LoginRequest) (marketapi.TokenResponse, error) {
	ctx, span := tracer.Start(ctx, "store:Login")
	defer span.End()

	res, err := s.opts.API.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return marketapi.TokenResponse{}, err
	}

	user := res.User
	err = s.applySession(ctx, res.AccessToken, &user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist token")
		return marketapi.TokenResponse{}, err
	}
	return res, nil
}

func (s *Store) Register(ctx context.Context, req marketapi.RegisterRequest) (marketapi.TokenResponse, error) {
	ctx, span := tracer.Start(ctx, "store:Register")
	defer span.End()

	res, err := s.opts.API.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration failed")
		return marketapi.TokenResponse{}, err
	}

	user := res.User
	err = s.applySession(ctx, res.AccessToken, &user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist token")
		return marketapi.TokenResponse{}, err
	}
	return res, nil
}

// LoadCurrentUser resolves the identity behind the stored token. Having
// no token is not an error, the user is simply cleared. A failed fetch
// invalidates the whole session (full logout) so a dead token is not
// retried on every read.
func (s *Store) LoadCurrentUser(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "store:LoadCurrentUser")
	defer span.End()

	if s.Token() == "" {
		s.user.Set(nil)
		return nil
	}

	user, err := s.opts.API.CurrentUser(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token rejected")
		slog.WarnContext(ctx, "failed to load current user, dropping session",
			"namespace", s.opts.Namespace,
			"err", err,
		)
		return s.Logout(ctx)
	}

	s.user.Set(&user)
	return nil
}

// Logout notifies the backend (best-effort) and clears token and user.
// Local state is cleared even when the notification fails.
func (s *Store) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "store:Logout")
	defer span.End()

	if s.Token() != "" {
		err := s.opts.API.Logout(ctx)
		if err != nil {
			slog.WarnContext(ctx, "logout notification failed",
				"namespace", s.opts.Namespace,
				"err", err,
			)
		}
	}
	return s.applySession(ctx, "", nil)
}

// CheckAuth is safe to call on every screen mount, it fetches the
// identity at most once while a token is present and the user is not
// loaded yet.
func (s *Store) CheckAuth(ctx context.Context) error {
	if s.Token() != "" && s.user.Get() == nil {
		return s.LoadCurrentUser(ctx)
	}
	return nil
}
