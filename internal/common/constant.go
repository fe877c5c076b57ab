// Package common contains constants and small helpers shared by the client,
// its transport and the fake backend.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates client and server log lines.
const RequestIDHeaderName = "X-Request-ID"

// CredentialKey is the single persisted key holding the bearer token.
const CredentialKey = "auth_token"
