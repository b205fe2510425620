// Package models defines the client-side records exchanged with the
// juridik backend: users, conversations, messages and uploaded documents.
package models
