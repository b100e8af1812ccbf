// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/utils"
)

var (
	ErrInvalidPrefix  = errors.New("route prefix must start with / and not be the root")
	ErrNilHandler     = errors.New("route handler is nil")
	ErrDuplicateRoute = errors.New("duplicate route prefix")
	ErrNilStage       = errors.New("stage is nil")
)

// ErrorHandler renders a failure. It is the terminal stage of the pipeline.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config declares a pipeline. The stage list is copied by New, so later
// changes to the slice have no effect.
type Config struct {
	Stages       []Stage
	Routes       []Route
	Fallback     http.Handler
	ErrorHandler ErrorHandler
	Logger       *logger.Logger
}

// Pipeline is an http.Handler running the declared stages and routes.
type Pipeline struct {
	stages       []Stage
	table        *routingTable
	errorHandler ErrorHandler
	logger       *logger.Logger
}

// New validates cfg and builds a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	for _, s := range cfg.Stages {
		if s == nil {
			return nil, ErrNilStage
		}
	}
	for _, route := range cfg.Routes {
		for _, s := range route.Stages {
			if s == nil {
				return nil, fmt.Errorf("%w: route %s", ErrNilStage, route.Prefix)
			}
		}
	}

	table, err := newRoutingTable(cfg.Routes, cfg.Fallback)
	if err != nil {
		return nil, fmt.Errorf("error building routing table: %w", err)
	}

	p := &Pipeline{
		stages:       append([]Stage(nil), cfg.Stages...),
		table:        table,
		errorHandler: cfg.ErrorHandler,
		logger:       cfg.Logger,
	}
	if p.errorHandler == nil {
		p.errorHandler = DefaultErrorHandler
	}
	if p.logger == nil {
		p.logger = logger.Nop()
	}

	return p, nil
}

// StageNames returns the names of the global stages in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

// Prefixes returns the declared route prefixes, longest first.
func (p *Pipeline) Prefixes() []string {
	prefixes := make([]string, 0, len(p.table.routes))
	for _, route := range p.table.routes {
		prefixes = append(prefixes, route.Prefix)
	}
	return prefixes
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ex := newExchange(w, r)
	defer p.finish(ex)

	if !p.runStages(ex, p.stages) {
		return
	}

	route, ok := p.table.match(ex.Request.URL.Path)
	if !ok {
		p.invoke(ex, p.table.fallback)
		return
	}

	if !p.runStages(ex, route.Stages) {
		return
	}

	ex.Request = stripPrefix(ex.Request, route.Prefix)
	p.invoke(ex, route.Handler)

	// Commit an implicit 200 through the writer chain so wrappers that act
	// on the first header write (e.g. the session cookie) still run.
	if !ex.Failed() && !ex.Committed() {
		ex.Writer.WriteHeader(http.StatusOK)
	}
}

// runStages reports whether the chain should continue.
func (p *Pipeline) runStages(ex *Exchange, stages []Stage) bool {
	for _, s := range stages {
		res := p.handle(ex, s)
		switch res.action {
		case actionProceed:
			if ex.Failed() {
				return false
			}
		case actionRespond:
			return false
		case actionFail:
			ex.fail(res.err)
			return false
		}
	}
	return true
}

func (p *Pipeline) handle(ex *Exchange, s Stage) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Fail(p.panicError(ex, s.Name(), rec))
		}
	}()
	return s.Handle(ex)
}

func (p *Pipeline) invoke(ex *Exchange, h http.Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			ex.fail(p.panicError(ex, "handler", rec))
		}
	}()
	h.ServeHTTP(ex.Writer, ex.Request)
}

func (p *Pipeline) panicError(ex *Exchange, where string, rec any) error {
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	p.log(ex).Error().
		Str("stage", where).
		Interface("panic", rec).
		Bytes("stack", debug.Stack()).
		Msg("recovered panic")
	return UnhandledError(fmt.Errorf("panic in %s: %v", where, rec))
}

// finish runs the terminal error handler when a failure was recorded.
func (p *Pipeline) finish(ex *Exchange) {
	if !ex.Failed() {
		return
	}

	log := p.log(ex)
	if ex.Committed() {
		log.Error().Err(ex.err).Int("status", ex.Status()).
			Msg("failure after response was committed")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("error handler panicked")
			if !ex.Committed() {
				http.Error(ex.Writer, GenericMessage, http.StatusInternalServerError)
			}
		}
	}()
	p.errorHandler(ex.Writer, ex.Request, ex.err)
}

func (p *Pipeline) log(ex *Exchange) *logger.Logger {
	return logger.FromContextOr(ex.Request.Context(), p.logger)
}

// DefaultErrorHandler renders err without any domain mapping.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	RenderError(w, err)
}

// RenderError writes err as an ErrorResponse. Unclassified errors render as
// unhandled with a generic message.
func RenderError(w http.ResponseWriter, err error) {
	pe := AsError(err)
	utils.WriteJSON(w, ErrorResponse{Errors: pe.Serialize()}, pe.StatusCode())
}
