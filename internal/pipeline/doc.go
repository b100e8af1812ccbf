// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline runs every inbound HTTP request through an explicit,
// ordered list of stages and then dispatches it to exactly one route.
//
// Each [Stage] returns a [Result]: [Proceed] continues with the next stage,
// [Respond] stops because the stage wrote the response itself, and [Fail]
// stops and hands the error to the terminal error handler. Stages never
// receive a continuation, so a stage cannot run the rest of the chain twice.
//
// After the global stages, the request is matched against a routing table of
// path prefixes (longest match on a segment boundary wins). A route may carry
// its own stages, which run before its handler. Requests matching no prefix go
// to the fallback, which fails with a not-found [Error] by default.
//
// The terminal error handler runs at most once per request. It receives the
// first error signalled by a stage, by a route handler through [Abort], or by a
// panic recovered anywhere in the chain.
package pipeline
