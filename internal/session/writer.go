// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"net/http"

	"github.com/MKhiriev/go-posts-api/internal/logger"
)

// sessionWriter commits the session cookie before the status line is sent,
// since headers cannot be changed afterwards.
type sessionWriter struct {
	http.ResponseWriter
	manager   *Manager
	session   *Session
	logger    *logger.Logger
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	if !w.session.Changed() {
		return
	}
	if err := w.manager.Save(w.ResponseWriter, w.session); err != nil {
		w.logger.Error().Err(err).Msg("error committing session")
	}
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commit()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
