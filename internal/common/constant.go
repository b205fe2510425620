// Package common contains shared constants and sentinel errors used across
// juridik components.
package common

// Keys under which the session credentials are persisted by the token store.
const (
	AccessTokenKey  = "auth_token"
	RefreshTokenKey = "refresh_token"
)

// AuthorizationHeader and BearerScheme build the credential header attached
// to every authenticated backend call.
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// MaxUploadSize is the largest file the client accepts for upload (10 MiB).
const MaxUploadSize = 10 << 20

// ProvisionalPrefix marks locally generated identifiers of records that the
// server has not confirmed yet.
const ProvisionalPrefix = "temp-"
