// Package metadata persists small key/value client state (currently the
// bearer credential) in the local sqlite database.
package metadata

import (
	"context"
)

// Repository is a string key/value table. Get returns ("", false, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
