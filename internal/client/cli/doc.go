// Package cli provides the interactive juridik terminal client.
//
// App only renders manager state: every command delegates to the auth,
// chat or document manager and prints the outcome. Typical flow: restore
// the stored session, start a background connectivity watcher and execute
// user commands until exit.
//
// Commands:
//   - signup / login / logout / whoami / forgot / reset
//   - list / new / open / delete / history
//   - send / attach (chat with optional file attachments)
//   - docs / upload / retry / rmdoc (document library)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
