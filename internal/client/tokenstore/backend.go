package tokenstore

import "context"

// Backend is the raw storage contract. Get returns (nil, nil) when the key
// does not exist.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// BatchDeleter is implemented by backends that can remove several keys in
// one step, so a sign-out never leaves half a credential behind.
type BatchDeleter interface {
	DeleteKeys(ctx context.Context, keys ...string) error
}
