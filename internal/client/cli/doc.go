// Package cli provides the interactive Code Monk command-line client.
//
// It wires configuration, the credential store, the REST transport, the
// session store and the registration flow behind a small REPL. Typical flow:
// probe the stored session, start a background connectivity watcher, then
// execute user commands until "exit".
//
// Key features:
//   - Login / Logout with a persisted bearer credential
//   - Email-verified registration (send code, verify, complete profile)
//   - whoami / refresh / profile against the signed-in account
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
