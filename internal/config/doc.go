// Package config provides configuration loading, merging, and validation
// facilities for the server.
//
// Configuration is assembled from multiple sources in the following order
// (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Boolean switches are phrased so that their zero value is the default
// (e.g. RateLimit.Disabled), because a zero value never overrides during
// the merge.
package config
