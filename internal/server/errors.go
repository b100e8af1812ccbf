package server

import "errors"

var (
	// errNoAPIListener is returned when there is no API handler or address to serve.
	errNoAPIListener = errors.New("API listener requires a handler and an address")

	errListenerFailed = errors.New("listener failed")
)
