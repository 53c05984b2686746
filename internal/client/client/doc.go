// Package client contains the client-side building blocks that talk to the
// backend or to local storage.
//
// # Overview
//
//  1. A transport-agnostic API contract (Client): Login, Register, Plans, Ping.
//  2. HTTPClient, the JSON-over-HTTP implementation. All calls share one resty
//     client that stamps an X-Request-ID and the bearer token of the current
//     session on every request.
//  3. FailureInterceptor, a resty response middleware that normalizes failed
//     replies into *APIError and reacts to 401 by navigating to the root view.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     file with embedded goose migrations.
//
// # Error Handling
//
// Failed replies surface as *APIError built from the server's error payload.
// Transport failures are wrapped with ErrUnavailable; replies without the
// expected "message" field with ErrMalformedResponse. 401 and 403 match
// ErrUnauthorized through errors.Is.
//
// There is no retry and no timeout policy beyond the configured per-request
// timeout.
package client
