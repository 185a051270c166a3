package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

var _ forecast.ResultCache = (*ForecastCache)(nil)

// ForecastCache caché de resultados de pronóstico sobre Redis.
// Un fallo de Redis nunca bloquea el pronóstico: un Get fallido es un miss
// y un Set fallido solo se loguea.
type ForecastCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// Connect abre la conexión a Redis y verifica con un ping.
func Connect(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// NewForecastCache construye la caché sobre un cliente ya conectado.
func NewForecastCache(client *redis.Client, log zerolog.Logger) *ForecastCache {
	return &ForecastCache{client: client, log: log}
}

// Get recupera un pronóstico cacheado. El segundo resultado es false en miss o error.
func (c *ForecastCache) Get(ctx context.Context, key string) (*dto.ForecastResponse, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug().Err(err).Str("key", key).Msg("caché de pronóstico: fallo en lectura, se trata como miss")
		}
		return nil, false
	}
	var resp dto.ForecastResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("caché de pronóstico: payload corrupto, se trata como miss")
		return nil, false
	}
	return &resp, true
}

// Set guarda un pronóstico con el TTL indicado. Los fallos solo se loguean.
func (c *ForecastCache) Set(ctx context.Context, key string, resp *dto.ForecastResponse, ttl time.Duration) {
	raw, err := json.Marshal(resp)
	if err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("caché de pronóstico: fallo al serializar")
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("caché de pronóstico: fallo en escritura")
	}
}
