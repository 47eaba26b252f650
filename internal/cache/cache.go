package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/faregate/internal/models"
)

const keyPrefix = "fares:v1:"

// Cache stores normalized results per search intent. The server runs with
// NoOpCache unless caching is switched on.
type Cache interface {
	Get(ctx context.Context, intent models.SearchIntent) ([]models.Flight, bool)
	Set(ctx context.Context, intent models.SearchIntent, flights []models.Flight) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

// NewRedisCache connects and pings before returning.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisConfig().TTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get treats every Redis or decoding failure as a miss.
func (c *RedisCache) Get(ctx context.Context, intent models.SearchIntent) ([]models.Flight, bool) {
	data, err := c.client.Get(ctx, Key(intent)).Bytes()
	if err != nil {
		return nil, false
	}

	var flights []models.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false
	}

	return flights, true
}

// Set skips empty result sets so a transient empty answer is not pinned
// for a whole TTL.
func (c *RedisCache) Set(ctx context.Context, intent models.SearchIntent, flights []models.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	data, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(intent), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, intent models.SearchIntent) ([]models.Flight, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, intent models.SearchIntent, flights []models.Flight) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key hashes the fields that change what the fare API returns. Filters are
// applied after the cache and are left out.
func Key(intent models.SearchIntent) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Adults        int
		Children      int
		CabinClass    string
	}{
		Origin:        strings.ToUpper(intent.Origin),
		Destination:   strings.ToUpper(intent.Destination),
		DepartureDate: intent.DepartureDate,
		Adults:        intent.Adults,
		Children:      intent.Children,
		CabinClass:    strings.ToLower(intent.CabinClass),
	}

	if intent.IsRoundTrip() {
		keyData.ReturnDate = *intent.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}
