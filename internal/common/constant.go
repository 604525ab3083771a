// Package common contains constants and helpers shared by the client layers.
package common

// Outbound HTTP header names.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	ContentTypeHeader   = "Content-Type"
	AcceptHeader        = "Accept"
)

// ContentTypeJSON is the media type of every JSON request body we send.
const ContentTypeJSON = "application/json"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
