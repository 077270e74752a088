// Package common contains shared constants and sentinel errors used across
// the resume analyzer client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// authenticated API calls.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName tags every outbound API request for log correlation.
const RequestIDHeaderName = "X-Request-ID"

// TokenMetadataKey is the single durable key holding the bearer token in
// the local metadata store.
const TokenMetadataKey = "token"

// AppName names the per-user data, state and config directories.
const AppName = "resumeanalyzer"
