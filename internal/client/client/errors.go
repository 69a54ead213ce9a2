package client

import "errors"

var (
	// ErrUnavailable marks transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")
)
