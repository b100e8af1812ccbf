// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session implements a cookie-backed session. The whole session is
// stored client-side as base64-encoded JSON in a single cookie; there is no
// server-side store.
//
// With Signed set, an HMAC-SHA256 of the cookie is stored in a companion
// "<name>.sig" cookie and a session whose signature does not match is
// discarded. Without it the cookie is accepted as presented.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/utils"
)

var (
	ErrMissingSignKey = errors.New("signed session requires a sign key")
	ErrEmptyName      = errors.New("session cookie name is empty")
)

// Options configures the session cookie.
type Options struct {
	Name    string
	Signed  bool
	Secure  bool
	SignKey string
}

// Session holds the decoded cookie values of a single request.
// It is not safe for concurrent use.
type Session struct {
	values  map[string]any
	changed bool
	cleared bool
}

func newSession(values map[string]any) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{values: values}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "".
func (s *Session) GetString(key string) string {
	v, _ := s.values[key].(string)
	return v
}

// Set stores value under key and marks the session for commit.
func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.changed = true
	s.cleared = false
}

// Delete removes key and marks the session for commit.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.changed = true
}

// Clear drops every value; the commit expires the cookie.
func (s *Session) Clear() {
	s.values = make(map[string]any)
	s.changed = true
	s.cleared = true
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	return len(s.values)
}

// Changed reports whether the session must be written back.
func (s *Session) Changed() bool {
	return s.changed
}

type contextKey struct{}

// FromContext returns the session attached by Manager.Attach.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Manager loads and commits sessions.
type Manager struct {
	opts Options
}

// NewManager validates opts and returns a Manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.Name == "" {
		return nil, ErrEmptyName
	}
	if opts.Signed && opts.SignKey == "" {
		return nil, ErrMissingSignKey
	}
	return &Manager{opts: opts}, nil
}

// Name returns the session cookie name.
func (m *Manager) Name() string {
	return m.opts.Name
}

func (m *Manager) sigName() string {
	return m.opts.Name + ".sig"
}

// Load decodes the session cookie of r. A missing, undecodable or, when
// signing is on, unverified cookie yields an empty session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.opts.Name)
	if err != nil || cookie.Value == "" {
		return newSession(nil)
	}

	if m.opts.Signed {
		sig, err := r.Cookie(m.sigName())
		if err != nil || !utils.ValidHash(m.signingInput(cookie.Value), m.opts.SignKey, sig.Value) {
			return newSession(nil)
		}
	}

	values, err := decode(cookie.Value)
	if err != nil {
		return newSession(nil)
	}
	return newSession(values)
}

// Save writes the Set-Cookie headers for s. Cleared or empty sessions
// expire the cookie.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if s.cleared || len(s.values) == 0 {
		m.expire(w)
		return nil
	}

	value, err := encode(s.values)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	http.SetCookie(w, m.cookie(m.opts.Name, value))
	if m.opts.Signed {
		sig := utils.HashString(m.signingInput(value), m.opts.SignKey)
		http.SetCookie(w, m.cookie(m.sigName(), sig))
	}
	return nil
}

func (m *Manager) expire(w http.ResponseWriter) {
	names := []string{m.opts.Name}
	if m.opts.Signed {
		names = append(names, m.sigName())
	}
	for _, name := range names {
		c := m.cookie(name, "")
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (m *Manager) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) signingInput(value string) string {
	return m.opts.Name + "=" + value
}

// Attach loads the session of r, attaches it to the request context and wraps
// w so that a changed session is committed right before the first header write.
func (m *Manager) Attach(w http.ResponseWriter, r *http.Request) (http.ResponseWriter, *http.Request) {
	s := m.Load(r)
	sw := &sessionWriter{ResponseWriter: w, manager: m, session: s, logger: logger.FromRequest(r)}
	return sw, r.WithContext(WithSession(r.Context(), s))
}

func encode(values map[string]any) (string, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decode(value string) (map[string]any, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
