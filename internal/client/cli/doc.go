// Package cli provides the interactive rentkeeper command-line client.
//
// It wires configuration, local state, the backend services and an
// interactive REPL that keeps working from the saved snapshot when the
// backend is unreachable. Typical flow: restore the previous session, start
// a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout / Profile
//   - Agency branding (colors, name, logo upload)
//   - List, search, sort by expiry and statistics over the contract book
//   - Show / Add / Edit / Delete contracts (online only)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
