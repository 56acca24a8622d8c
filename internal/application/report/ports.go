package report

import "context"

// Cache caché opcional de respuestas de reportes. nil = sin caché.
// Get devuelve false en miss; Set es best-effort.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, val any)
}
