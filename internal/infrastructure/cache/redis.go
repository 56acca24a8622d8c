// Package cache implementa la caché de reportes sobre Redis. Es opcional:
// sin REDIS_ADDR la aplicación funciona sin caché (los usecases aceptan nil).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Claves conocidas de la caché de reportes. Invalidate las borra todas:
// cualquier mutación de stock puede afectar a cualquier reporte.
var reportKeys = []string{
	"reports:dashboard",
	"reports:valuation",
	"reports:top-items",
}

// ReportCache guarda respuestas de reportes con TTL corto. Los fallos de
// Redis degradan a cache-miss: nunca rompen la petición.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New conecta con Redis y verifica con un ping.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*ReportCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ReportCache{rdb: rdb, ttl: ttl}, nil
}

// Get deserializa el valor cacheado en dest. Devuelve false en miss o error.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: valor corrupto, se descarta")
		return false
	}
	return true
}

// Set serializa y guarda el valor con el TTL configurado. Best-effort.
func (c *ReportCache) Set(ctx context.Context, key string, val any) {
	b, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set falló")
	}
}

// Invalidate borra las claves de reportes. Lo invoca el Applier tras cada
// mutación exitosa.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, reportKeys...).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: invalidación falló")
	}
}

// Close cierra la conexión con Redis.
func (c *ReportCache) Close() error {
	return c.rdb.Close()
}
