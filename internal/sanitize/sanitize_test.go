// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sanitize

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "script removed with content", in: `<script>alert("x")</script>hello`, want: "hello"},
		{name: "tags stripped", in: "<b>bold</b> move", want: "bold move"},
		{name: "img handler removed", in: `<img src=x onerror=alert(1)>pic`, want: "pic"},
		{name: "stray angle bracket escaped", in: "a < b", want: "a &lt; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.String(tt.in))
		})
	}
}

func TestValue_DropsOperatorKeys(t *testing.T) {
	in := map[string]any{
		"email":    map[string]any{"$gt": ""},
		"password": "pw",
		"$where":   "1 == 1",
		"a.b":      "dotted",
		"tags":     []any{"<i>x</i>", map[string]any{"$ne": 1, "ok": true}},
		"count":    3.0,
		"nothing":  nil,
	}

	got := New().Value(in)

	assert.Equal(t, map[string]any{
		"email":    map[string]any{},
		"password": "pw",
		"tags":     []any{"x", map[string]any{"ok": true}},
		"count":    3.0,
		"nothing":  nil,
	}, got)
}

func TestValue_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"$gt": 1, "title": "<b>t</b>"}
	New().Value(in)
	assert.Len(t, in, 2)
	assert.Equal(t, "<b>t</b>", in["title"])
}

func TestQuery(t *testing.T) {
	in := url.Values{
		"q":            {"<script>x</script>hi", "plain"},
		"$where":       {"1"},
		"filter[$ne]":  {"a"},
		"filter[name]": {"b"},
		"a.b":          {"c"},
	}

	got := New().Query(in)

	assert.Equal(t, url.Values{
		"q":            {"hi", "plain"},
		"filter[name]": {"b"},
	}, got)
}

func TestForbiddenKey(t *testing.T) {
	assert.True(t, ForbiddenKey("$gt"))
	assert.True(t, ForbiddenKey("profile.name"))
	assert.False(t, ForbiddenKey("price$"))
	assert.False(t, ForbiddenKey("title"))
}
