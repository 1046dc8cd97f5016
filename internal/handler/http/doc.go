// Package http implements the REST transport of go-list-keeper.
//
// Routes are registered in [Handler.Init]. Every request gets a trace ID and
// an access log line; API routes are gzip-aware and GET responses carry an
// ETag. Authenticated routes require a Bearer token issued by the auth
// service. Change events are streamed over a websocket at /api/events.
package http
