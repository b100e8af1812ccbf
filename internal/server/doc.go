// Package server runs the application's HTTP listeners.
//
// The API listener is always started; the ops listener serving metrics and
// health probes is started when an ops address is configured. Both are shut
// down gracefully on SIGTERM, SIGINT or SIGQUIT, or when one of them fails.
package server
