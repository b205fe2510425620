// Package client is the single outbound gateway of the juridik client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the API interface) covering the
//     backend surface: authentication, conversations and messages, document
//     uploads, and a reachability Ping.
//  2. A concrete REST implementation (see HTTPClient) on top of resty. Every
//     call attaches the bearer credential from the injected session.Session
//     and, on a 401, refreshes the credential once and replays the call once.
//
// # Refresh protocol
//
// Each call moves through Idle → AwaitingResponse, and on a first 401
// through RefreshingCredential → AwaitingResponse again, ending in Idle or
// Failed. A replayed call is never refreshed a second time. Concurrent
// refreshes are coalesced so the backend sees one refresh request. When no
// refresh token is stored, or the refresh is rejected, the original error is
// returned; a rejected refresh also forgets the session.
//
// # Error Handling
//
// Transport failures and timeouts match ErrUnavailable. Non-2xx responses are
// returned as *APIError; 401 and 403 also match ErrUnauthorized. The decoded
// body is available as an ErrorPayload and UserMessage flattens it for
// display.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context; the configured request timeout applies on top of it.
package client
