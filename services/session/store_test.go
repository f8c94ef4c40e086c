package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/testutil"
	"fleamarket-client/lib/tokenstore"

	"github.com/stretchr/testify/require"
)

// fakeBackend implements just enough of the public API for session
// lifecycle tests.
type fakeBackend struct {
	mu          sync.Mutex
	validTokens map[string]marketapi.User

	meCalls atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{validTokens: map[string]marketapi.User{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/public/login", func(w http.ResponseWriter, r *http.Request) {
		var req marketapi.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)

		if req.Password == "wrong" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
			return
		}

		user := marketapi.User{Id: int64(len(req.Username)), Username: req.Username, Role: "user", IsActive: true}
		token := "tok-" + req.Username

		b.mu.Lock()
		b.validTokens[token] = user
		b.mu.Unlock()

		json.NewEncoder(w).Encode(marketapi.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User:        user,
		})
	})
	mux.HandleFunc("POST /api/public/register", func(w http.ResponseWriter, r *http.Request) {
		var req marketapi.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)

		user := marketapi.User{Id: 1, Username: req.Username, Email: req.Email, Role: "user", IsActive: true}
		token := "tok-" + req.Username

		b.mu.Lock()
		b.validTokens[token] = user
		b.mu.Unlock()

		json.NewEncoder(w).Encode(marketapi.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User:        user,
		})
	})
	mux.HandleFunc("GET /api/public/me", func(w http.ResponseWriter, r *http.Request) {
		b.meCalls.Add(1)

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		user, ok := b.validTokens[token]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("POST /api/public/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	})
	return mux
}

func setup(t *testing.T) (*Store, *fakeBackend, *tokenstore.Store) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/session"})
	t.Cleanup(cleanup)

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	tokens, err := tokenstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { tokens.Close() })

	var store *Store
	api := marketapi.NewClient(marketapi.ClientOptions{
		BaseUrl: server.URL,
		Tokens: func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		},
	})

	store, err = New(context.Background(), Options{
		API:       api,
		Tokens:    tokens,
		Namespace: NamespaceUser,
	})
	require.NoError(t, err)
	return store, backend, tokens
}

func TestLoginSetsTokenAndUser(t *testing.T) {
	store, _, tokens := setup(t)
	ctx := context.Background()

	res, err := store.Login(ctx, marketapi.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	require.Equal(t, res.AccessToken, store.Token())
	require.True(t, store.IsAuthenticated())
	require.Equal(t, "alice", store.User().Username)

	persisted, err := tokens.Get(ctx, NamespaceUser)
	require.NoError(t, err)
	require.Equal(t, res.AccessToken, persisted)
}

func TestLoginFailureChangesNothing(t *testing.T) {
	store, _, _ := setup(t)
	ctx := context.Background()

	_, err := store.Login(ctx, marketapi.LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Incorrect username or password", err.Error())

	require.Equal(t, "", store.Token())
	require.False(t, store.IsAuthenticated())
}

func TestLogoutAlwaysClears(t *testing.T) {
	store, _, tokens := setup(t)
	ctx := context.Background()

	_, err := store.Login(ctx, marketapi.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	require.Equal(t, "", store.Token())
	require.False(t, store.IsAuthenticated())

	persisted, err := tokens.Get(ctx, NamespaceUser)
	require.NoError(t, err)
	require.Equal(t, "", persisted)

	// logging out an already logged-out store is a no-op
	require.NoError(t, store.Logout(ctx))
}

func TestCheckAuthIsIdempotent(t *testing.T) {
	store, backend, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok-alice"))
	backend.mu.Lock()
	backend.validTokens["tok-alice"] = marketapi.User{Id: 5, Username: "alice"}
	backend.mu.Unlock()

	require.NoError(t, store.CheckAuth(ctx))
	require.NoError(t, store.CheckAuth(ctx))

	require.EqualValues(t, 1, backend.meCalls.Load())
	require.Equal(t, "alice", store.User().Username)
}

func TestLoadCurrentUserWithoutTokenSkipsNetwork(t *testing.T) {
	store, backend, _ := setup(t)

	require.NoError(t, store.LoadCurrentUser(context.Background()))
	require.False(t, store.IsAuthenticated())
	require.EqualValues(t, 0, backend.meCalls.Load())
}

func TestInvalidTokenCausesFullLogout(t *testing.T) {
	store, _, tokens := setup(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok-expired"))

	require.NoError(t, store.LoadCurrentUser(ctx))
	require.Equal(t, "", store.Token())
	require.False(t, store.IsAuthenticated())

	persisted, err := tokens.Get(ctx, NamespaceUser)
	require.NoError(t, err)
	require.Equal(t, "", persisted)
}

func TestTokenSurvivesRestart(t *testing.T) {
	store, _, tokens := setup(t)
	ctx := context.Background()

	_, err := store.Login(ctx, marketapi.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	token := store.Token()

	// simulated restart: a fresh store over the same token db
	reopened, err := New(ctx, Options{API: nil, Tokens: tokens, Namespace: NamespaceUser})
	require.NoError(t, err)
	require.Equal(t, token, reopened.Token())
}

func TestRacingLoginsLeaveConsistentState(t *testing.T) {
	store, _, _ := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, name := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := store.Login(ctx, marketapi.LoginRequest{Username: name, Password: "pw"})
			require.NoError(t, err)
		}(name)
	}
	wg.Wait()

	// whichever response was applied last, token and user came from
	// the same response
	user := store.User()
	require.NotNil(t, user)
	require.Equal(t, fmt.Sprintf("tok-%s", user.Username), store.Token())
}

func TestUserChangesNotifies(t *testing.T) {
	store, _, _ := setup(t)
	ctx := context.Background()

	var events []string
	store.UserChanges().Subscribe(func(u *marketapi.User) {
		if u == nil {
			events = append(events, "logout")
		} else {
			events = append(events, "login:"+u.Username)
		}
	})

	_, err := store.Login(ctx, marketapi.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx))

	require.Equal(t, []string{"login:alice", "logout"}, events)
}
