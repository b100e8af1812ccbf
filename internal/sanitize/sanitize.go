// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sanitize neutralises untrusted decoded input.
//
// Two rules are applied recursively: object keys that start with "$" or
// contain "." are dropped, since query languages treat them as operators or
// paths; and every string value is passed through an HTML policy that strips
// all markup and escapes what remains.
package sanitize

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer applies the key and string rules. It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer using a strict policy that allows no HTML at all.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// ForbiddenKey reports whether key would be dropped.
func ForbiddenKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

// String strips markup from v and HTML-escapes the remaining text.
func (s *Sanitizer) String(v string) string {
	if !strings.ContainsAny(v, "<>&\"'") {
		return v
	}
	return s.policy.Sanitize(v)
}

// Value sanitizes a decoded JSON value (the shapes produced by
// encoding/json decoding into any). Other types are returned as is.
func (s *Sanitizer) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if ForbiddenKey(k) {
				continue
			}
			out[k] = s.Value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.Value(item)
		}
		return out
	case string:
		return s.String(val)
	default:
		return v
	}
}

// Query sanitizes URL query values, dropping forbidden keys and keys whose
// bracket segments (e.g. "filter[$ne]") are forbidden.
func (s *Sanitizer) Query(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		if forbiddenQueryKey(k) {
			continue
		}
		clean := make([]string, len(vs))
		for i, v := range vs {
			clean[i] = s.String(v)
		}
		out[k] = clean
	}
	return out
}

func forbiddenQueryKey(key string) bool {
	if ForbiddenKey(key) {
		return true
	}
	for _, part := range strings.FieldsFunc(key, func(r rune) bool { return r == '[' || r == ']' }) {
		if ForbiddenKey(part) {
			return true
		}
	}
	return false
}
