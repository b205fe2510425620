// Package services contains the session managers of the juridik client:
// authentication, conversations with their message timeline, and uploaded
// documents.
//
// Managers own their state in an observable cell and never return errors
// from user actions. Every action resolves to a success flag (or an
// identifier) and leaves a user-facing message in the state's Error field
// when it fails.
package services
