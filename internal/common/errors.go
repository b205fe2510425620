package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrNoRefreshToken = errors.New("no refresh token")

	// Upload validation errors.
	ErrFileTooLarge    = errors.New("file exceeds the 10 MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")

	// Chat errors.
	ErrNoConversation = errors.New("no conversation")
)
