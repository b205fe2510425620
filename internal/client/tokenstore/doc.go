// Package tokenstore persists the session credentials (access and refresh
// token) behind one get/set/delete contract, whatever the storage medium.
//
// Backends
//
//   - SecureFileBackend: a single AES-GCM sealed file in a private data
//     directory; the key is derived from a random per-machine key file.
//   - SQLiteBackend: a key/value table in a local SQLite database managed by
//     goose migrations.
//   - MemoryBackend: process-local map, used by tests and the "memory" kind.
//
// Store wraps a Backend and never lets a storage fault reach the caller as
// anything worse than "no credential": Get degrades to absent, Delete is
// silent, Set reports failure as an error value.
//
// Open chooses the backend from configuration; for the "auto" kind it probes
// the data directory once (capability detection) and sticks with the choice.
package tokenstore
