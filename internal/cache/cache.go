// Package cache keeps seating results keyed by a digest of their inputs.
// Allocation is deterministic, so a hit is always equal to a fresh run.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rhyrak/go-seating/pkg/model"
)

const keyPrefix = "seating"

type Cache interface {
	Get(ctx context.Context, key string) ([]*model.SessionResult, bool, error)
	Set(ctx context.Context, key string, results []*model.SessionResult) error
}

// Key digests the raw input tables together with the way they are parsed
// (delimiter, title rows) and the seating options.
func Key(students, timetable, rooms []byte, delimiter rune, titleRows, buffer int, sparse bool) string {
	h := sha1.New()
	parts := [][]byte{
		students,
		timetable,
		rooms,
		[]byte(string(delimiter)),
		[]byte(strconv.Itoa(titleRows)),
		[]byte(strconv.Itoa(buffer)),
		[]byte(strconv.FormatBool(sparse)),
	}
	for _, part := range parts {
		// length prefix keeps "ab"+"c" apart from "a"+"bc"
		io.WriteString(h, strconv.Itoa(len(part))+":")
		h.Write(part)
	}
	return fmt.Sprintf("%s:%x", keyPrefix, h.Sum(nil))
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]*model.SessionResult, bool, error) {
	bs, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var results []*model.SessionResult
	if err := json.Unmarshal(bs, &results); err != nil {
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return results, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, results []*model.SessionResult) error {
	bs, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, bs, c.ttl).Err()
}

// NewRedisClient connects and pings the server with a short timeout. It
// returns nil when the server cannot be reached so callers run uncached.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
