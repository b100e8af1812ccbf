// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Route binds a path prefix to a handler. Stages run, in order, after the
// global stages and before Handler. Handler sees the path with Prefix
// stripped, always starting with "/".
type Route struct {
	Prefix  string
	Stages  []Stage
	Handler http.Handler
}

// routingTable matches request paths against declared prefixes; the fallback
// is consulted only after every prefix failed to match.
type routingTable struct {
	routes   []Route
	fallback http.Handler
}

func newRoutingTable(routes []Route, fallback http.Handler) (*routingTable, error) {
	seen := make(map[string]struct{}, len(routes))
	table := &routingTable{
		routes:   make([]Route, 0, len(routes)),
		fallback: fallback,
	}

	for _, route := range routes {
		prefix := strings.TrimRight(route.Prefix, "/")
		if !strings.HasPrefix(route.Prefix, "/") || prefix == "" {
			return nil, ErrInvalidPrefix
		}
		if route.Handler == nil {
			return nil, ErrNilHandler
		}
		if _, ok := seen[prefix]; ok {
			return nil, ErrDuplicateRoute
		}
		seen[prefix] = struct{}{}

		route.Prefix = prefix
		route.Stages = append([]Stage(nil), route.Stages...)
		table.routes = append(table.routes, route)
	}

	sort.SliceStable(table.routes, func(i, j int) bool {
		return len(table.routes[i].Prefix) > len(table.routes[j].Prefix)
	})

	if table.fallback == nil {
		table.fallback = http.HandlerFunc(notFound)
	}

	return table, nil
}

// match returns the route with the longest prefix matching path on a segment
// boundary, or false.
func (t *routingTable) match(path string) (Route, bool) {
	for _, route := range t.routes {
		if path == route.Prefix || strings.HasPrefix(path, route.Prefix+"/") {
			return route, true
		}
	}
	return Route{}, false
}

func notFound(w http.ResponseWriter, r *http.Request) {
	Abort(w, r, NotFoundError())
}

// stripPrefix returns a shallow copy of r whose path is relative to prefix.
func stripPrefix(r *http.Request, prefix string) *http.Request {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" {
		rest = "/"
	}

	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = rest
	r2.URL.RawPath = ""
	return r2
}
