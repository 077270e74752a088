// Package client contains the transport side of the resume analyzer client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     analysis backend: Login/Register, ListAnalyses, UploadResume and
//     GetAnalysis.
//  2. A concrete HTTP+JSON implementation (see HTTPClient) that attaches
//     the bearer token, tags every request with an X-Request-ID, streams
//     resume uploads as multipart bodies and maps failures to errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *APIError carrying the server message verbatim; 401 and 403 additionally
// match ErrUnauthorized with errors.Is. Undecodable 2xx bodies wrap
// ErrBadResponse.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. It never sets its own timeouts;
// cancellation is controlled by the caller's context.
package client
