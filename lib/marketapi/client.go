// Package marketapi is the REST client for the marketplace backend's
// public surface.
package marketapi

import (
	"time"

	"fleamarket-client/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/marketapi")

// TokenSource supplies the current bearer token, "" when there is no
// session. Resolved per request so token rotation needs no client rebuild.
type TokenSource func() string

type Client struct {
	Http *resty.Client

	tokens TokenSource
}

type ClientOptions struct {
	// e.g. "http://localhost:8000"
	BaseUrl string
	// path prefix for every endpoint, defaults to "/api/public"
	BasePath string
	// optional, requests go out unauthenticated when nil
	Tokens TokenSource
	// optional debug transcript sink, see restyutil
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	basePath := opts.BasePath
	if basePath == "" {
		basePath = "/api/public"
	}

	http := resty.New()
	http.SetBaseURL(opts.BaseUrl + basePath)
	http.SetTimeout(time.Second * 30)
	http.SetHeader("accept", "application/json")

	restyutil.InstrumentClient(http, "marketapi/http", opts.InstrumentOutput)

	c := &Client{
		Http:   http,
		tokens: opts.Tokens,
	}
	http.OnBeforeRequest(c.attachBearer)
	return c
}

// attachBearer adds the Authorization header only when a token exists,
// requests stay anonymous otherwise.
func (c *Client) attachBearer(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	token := c.tokens()
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}
