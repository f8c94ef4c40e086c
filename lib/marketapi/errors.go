package marketapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrAuthRequired is a client-side precondition failure, it never
// reaches the network.
var ErrAuthRequired = errors.New("authentication required")

var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx response. Detail carries the server-supplied
// message when the body had one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return e.Detail
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// statusError turns a non-2xx resty response into a StatusError,
// preferring the server's `detail` field over the generic message.
func statusError(res *resty.Response, generic string) error {
	detail := generic
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(res.Body(), &body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &StatusError{Code: res.StatusCode(), Detail: detail}
}

func decodeBody(res *resty.Response, out any) error {
	err := json.Unmarshal(res.Body(), out)
	if err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
