package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/domain/category"
	"github.com/zmitacart/catalog-api/pkg/config"
)

const (
	// KeyPrefix prefijo de todas las claves del árbol de categorías.
	KeyPrefix = "categories:"

	// GenerationKey contador que InvalidateAll incrementa.
	GenerationKey = KeyPrefix + "gen"

	// DefaultTTL vida de una lectura cacheada si la config no indica otra.
	DefaultTTL = 5 * time.Minute

	scanBatch = 100
)

var _ appcategory.TreeCache = (*RedisTreeCache)(nil)

// ConnectRedis crea el cliente y verifica la conexión con un ping.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisTreeCache guarda lecturas del árbol serializadas en JSON.
// Errores de Redis se registran como warning y se tratan como miss.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisTreeCache construye la caché. ttl cero usa DefaultTTL.
func NewRedisTreeCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisTreeCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisTreeCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "category_cache").Logger(),
	}
}

// Generation lee el contador de generación; una clave ausente es la generación 0.
func (c *RedisTreeCache) Generation(ctx context.Context) (uint64, bool) {
	gen, err := c.client.Get(ctx, GenerationKey).Uint64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("cache generation")
		return 0, false
	}
	return gen, true
}

// Get devuelve la lectura cacheada bajo key en la generación gen.
func (c *RedisTreeCache) Get(ctx context.Context, gen uint64, key string) ([]*category.Node, bool) {
	raw, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache get")
		return nil, false
	}
	var nodes []*category.Node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache decode")
		return nil, false
	}
	return nodes, true
}

// Set guarda nodes bajo key en la generación gen con el TTL configurado.
// Si gen ya fue retirada la entrada nunca se lee y expira sola.
func (c *RedisTreeCache) Set(ctx context.Context, gen uint64, key string, nodes []*category.Node) {
	raw, err := json.Marshal(nodes)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache encode")
		return
	}
	if err := c.client.Set(ctx, entryKey(gen, key), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set")
	}
}

// InvalidateAll abre una generación nueva (INCR) y borra con SCAN las entradas de las anteriores.
func (c *RedisTreeCache) InvalidateAll(ctx context.Context) {
	current := ""
	gen, err := c.client.Incr(ctx, GenerationKey).Uint64()
	if err != nil {
		c.log.Warn().Err(err).Msg("cache incr generation")
	} else {
		current = entryKey(gen, "")
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", scanBatch).Result()
		if err != nil {
			c.log.Warn().Err(err).Msg("cache scan")
			return
		}
		stale := keys[:0]
		for _, k := range keys {
			if k == GenerationKey || (current != "" && strings.HasPrefix(k, current)) {
				continue
			}
			stale = append(stale, k)
		}
		if len(stale) > 0 {
			if err := c.client.Del(ctx, stale...).Err(); err != nil {
				c.log.Warn().Err(err).Msg("cache delete")
			}
			deleted += len(stale)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		c.log.Debug().Int("deleted", deleted).Uint64("generation", gen).Msg("cache invalidada")
	}
}

func entryKey(gen uint64, key string) string {
	return KeyPrefix + strconv.FormatUint(gen, 10) + ":" + key
}
