// Package session is the client's single source of truth for who, if anyone,
// is signed in.
//
// A Store starts in StatusUnknown. Init runs the "who am I" probe exactly once
// and settles on StatusAuthenticated or StatusUnauthenticated; afterwards only
// Login, Logout, RefreshUser, UpdateUser and the 401 hook (HandleUnauthorized)
// move it. A user snapshot is present exactly when the status is
// StatusAuthenticated.
//
// Every public operation returns a models.Result; nothing panics or returns an
// error across the package boundary. The store never holds its lock across a
// network call, because the transport re-enters it through HandleUnauthorized.
package session
