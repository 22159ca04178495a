package http

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination=mocks/http.go -package=mocks . IClient
type IClient interface {
	DoHTTPRequest(ctx context.Context, requestParam *RequestParam) error
}

type RequestParam struct {
	RequestURI string
	Method     string
	Header     map[string]string
	// Body is sent as-is when it is an io.Reader or []byte, and JSON-encoded otherwise.
	Body interface{}
	// Response, when set, receives the decoded JSON body. It is filled for
	// error statuses too, so callers can read structured error payloads.
	Response interface{}

	Timeout time.Duration
}

// StatusError is returned for responses with a status code of 400 or above.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTP request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}
