// Package directus is the HTTP client for the headless-CMS backend that keeps
// users, contracts, branding records and uploaded files.
//
// # Overview
//
// Client wraps net/http with the conventions the backend expects:
//   - every body is JSON and every response is enveloped as {"data": ...};
//   - the access token obtained by Login travels as "Authorization: Bearer";
//   - each request carries a fresh X-Request-ID for log correlation.
//
// Items are exchanged as contracts.RawRecord; normalization is left to the
// caller.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses become
// *APIError, which unwraps to ErrUnauthorized (401/403), ErrNotFound (404) or
// ErrUnavailable (502/503/504) so callers can match with errors.Is and still
// read the backend's message with errors.As.
//
// # Concurrency
//
// A Client is safe for concurrent use; the token is guarded by a mutex.
package directus
