// Package api is the HTTP/JSON transport to the Code Monk backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the session store and the
// registration flow. HTTPClient implements it over net/http:
//
//   - every request carries the stored bearer token (when present) and an
//     X-Request-ID for log correlation;
//   - responses use the backend envelope {success, message, data, token, errors};
//   - any 401, from any endpoint, invokes the installed UnauthorizedHandler
//     before the error is returned to the caller.
//
// # Error Handling
//
// Failures are returned as *Error values that match one of the sentinel kinds
// with errors.Is: ErrNetwork, ErrUnauthorized, ErrValidation, ErrServer.
// Message always carries something displayable. ResultOf turns an error into
// the models.Result shape the rest of the client works with.
package api
