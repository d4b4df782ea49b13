package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss se devuelve cuando la clave no está en el cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache contrato mínimo del cache de acceso resuelto. El cache es una
// proyección, nunca fuente de verdad: cualquier error se trata como miss y se
// resuelve en fresco.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// AccessKey clave del resultado de acceso de un usuario.
func AccessKey(userID string) string {
	return "access:" + userID
}
