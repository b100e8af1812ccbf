// Package http implements the HTTP transport of the posts API.
//
// Init composes the request pipeline: the global stages (body decoding,
// security headers, sanitization, CORS, rate limiting, session), the user
// and post routers behind their prefixes and the terminal error handler.
// The pipeline is wrapped with tracing, trace-id, access logging and
// metrics middleware. InitOps builds the operational router.
package http
