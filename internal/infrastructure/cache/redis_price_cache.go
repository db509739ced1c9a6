package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-ventas/internal/application/catalog"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

var _ catalog.PriceCache = (*RedisPriceCache)(nil)

const (
	keyPrefix = "pos:active-price:"
	genPrefix = "pos:active-price-gen:"
)

// setIfGeneration guarda el precio solo si la generación del producto no cambió.
// KEYS: generación, precio. ARGV: generación leída, payload, ttl en ms (0 = sin expiración).
var setIfGeneration = redis.NewScript(`
local g = redis.call('GET', KEYS[1]) or '0'
if g ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// RedisPriceCache cache del precio activo por producto sobre Redis.
type RedisPriceCache struct {
	client *redis.Client
}

// NewRedisPriceCache construye el cliente Redis.
func NewRedisPriceCache(addr, password string, db int) *RedisPriceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisPriceCache{client: client}
}

// NewRedisPriceCacheFromClient usa un cliente ya construido.
func NewRedisPriceCacheFromClient(client *redis.Client) *RedisPriceCache {
	return &RedisPriceCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisPriceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisPriceCache) Close() error {
	return c.client.Close()
}

func (c *RedisPriceCache) Get(ctx context.Context, productID string) (*entity.Price, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+productID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var p entity.Price
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *RedisPriceCache) Generation(ctx context.Context, productID string) (int64, error) {
	val, err := c.client.Get(ctx, genPrefix+productID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (c *RedisPriceCache) Set(ctx context.Context, price *entity.Price, generation int64, ttl time.Duration) error {
	if price == nil {
		return nil
	}
	payload, err := json.Marshal(price)
	if err != nil {
		return err
	}
	keys := []string{genPrefix + price.ProductID, keyPrefix + price.ProductID}
	return setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(generation, 10), payload, ttl.Milliseconds()).Err()
}

// Delete avanza la generación y borra el precio en una sola transacción.
func (c *RedisPriceCache) Delete(ctx context.Context, productID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genPrefix+productID)
		pipe.Del(ctx, keyPrefix+productID)
		return nil
	})
	return err
}
