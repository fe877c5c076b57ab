// Package e2e drives the session store and the registration flow over real
// HTTP against the in-memory backend from internal/mockapi.
package e2e
