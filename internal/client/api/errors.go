package api

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrRequestFailed = errors.New("request failed")
)
