// Package credentials persists the session credential: one opaque bearer
// token under a single key. Absence of the key is the normal anonymous state.
package credentials

import (
	"context"
	"fmt"
)

// Store holds the bearer token. Load returns "" when nothing is stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Erase(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// OpenOptions selects and configures a backend.
type OpenOptions struct {
	Backend       string
	DatabasePath  string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string
}

// Open builds the configured Store.
func Open(ctx context.Context, o OpenOptions) (Store, error) {
	switch o.Backend {
	case "", BackendSQLite:
		return OpenSQLite(ctx, o.DatabasePath)
	case BackendRedis:
		return OpenRedis(ctx, o.RedisAddr, o.RedisPassword, o.RedisPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown credential store %q", o.Backend)
	}
}
