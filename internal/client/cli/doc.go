// Package cli is the interactive gymkeeper terminal client.
//
// It wires configuration, the local session database, the server
// connection and the main workout screen behind a small REPL. Typical flow:
// restore or establish a session, pull the user's workouts, edit the
// selected day, and let the log be pushed whenever the app goes to the
// background, on "sync", on logout and on exit.
//
// The REPL is started with App.Run, which blocks until the user exits.
package cli
