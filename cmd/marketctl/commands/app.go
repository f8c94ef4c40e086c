package commands

import (
	"context"
	"os"

	"fleamarket-client/lib/configutil"
	"fleamarket-client/lib/marketapi"
	"fleamarket-client/lib/restyutil"
	"fleamarket-client/lib/serviceutil"
	"fleamarket-client/lib/tokenstore"
	"fleamarket-client/services/favorites"
	"fleamarket-client/services/marketplace"
	"fleamarket-client/services/navguard"
	"fleamarket-client/services/session"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Config struct {
	// e.g. "http://localhost:8000"
	BaseUrl string `json:"base_url"`
	TokenDb string `json:"token_db"`
	// when set, request/response transcripts are written here
	InstrumentDir string `json:"instrument_dir"`
}

// App wires the api clients and services the subcommands work with.
// Both session domains are loaded up front so a persisted token from a
// previous run is picked up automatically.
type App struct {
	Config    Config
	Tokens    *tokenstore.Store
	User      *session.Store
	Admin     *session.Store
	API       *marketapi.Client
	Favorites *favorites.Service
	Browser   *marketplace.Browser
	Detail    *marketplace.DetailLoader
	Guard     *navguard.Guard
}

func setup(ctx context.Context) *App {
	cfg, err := configutil.ReadRecursively[Config]("marketctl.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = "http://localhost:8000"
	}
	if cfg.TokenDb == "" {
		cfg.TokenDb = "marketctl.db"
	}

	var output restyutil.InstrumentOutput
	if cfg.InstrumentDir != "" {
		output = restyutil.NewFilesystemOutput(cfg.InstrumentDir)
	}

	tokens, err := tokenstore.Open(cfg.TokenDb)
	if err != nil {
		serviceutil.Fatal("failed to open token db", err)
	}

	var user *session.Store
	api := marketapi.NewClient(marketapi.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Tokens: func() string {
			if user == nil {
				return ""
			}
			return user.Token()
		},
		InstrumentOutput: output,
	})
	user, err = session.New(ctx, session.Options{
		API:       api,
		Tokens:    tokens,
		Namespace: session.NamespaceUser,
	})
	if err != nil {
		serviceutil.Fatal("failed to load user session", err)
	}

	var admin *session.Store
	adminApi := marketapi.NewClient(marketapi.ClientOptions{
		BaseUrl:  cfg.BaseUrl,
		BasePath: "/api/auth",
		Tokens: func() string {
			if admin == nil {
				return ""
			}
			return admin.Token()
		},
		InstrumentOutput: output,
	})
	admin, err = session.New(ctx, session.Options{
		API:       adminApi,
		Tokens:    tokens,
		Namespace: session.NamespaceAdmin,
	})
	if err != nil {
		serviceutil.Fatal("failed to load admin session", err)
	}

	return &App{
		Config:    cfg,
		Tokens:    tokens,
		User:      user,
		Admin:     admin,
		API:       api,
		Favorites: favorites.NewService(api, user),
		Browser:   marketplace.NewBrowser(api),
		Detail:    marketplace.NewDetailLoader(api),
		Guard:     navguard.NewGuard(admin),
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
