// Package redisstore backs the shared storage surface with Redis so that
// several client instances of the same origin observe one another's
// session state. Failures degrade to misses and dropped writes rather
// than errors: the session kit already fails closed on absent state, and
// a flapping Redis must not crash the client.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shiftwatch/sessionguard/storage"
)

var (
	_ storage.Store   = (*Store)(nil)
	_ storage.Counter = (*Store)(nil)
)

const opTimeout = 2 * time.Second

// decrFloorScript decrements a counter without ever letting it go
// negative. Counter drift from crashed clients is expected; the floor
// keeps it self-healing.
const decrFloorScript = `
local v = tonumber(redis.call("GET", KEYS[1]) or "0")
if v > 0 then
  return redis.call("DECR", KEYS[1])
end
redis.call("SET", KEYS[1], "0")
return 0
`

var decrFloorLua = redis.NewScript(decrFloorScript)

type Store struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

type Option func(*Store)

// WithPrefix namespaces every key, so several deployments can share one
// Redis.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(client *redis.Client, options ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "sessionguard:",
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Store) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("redis get failed, treating as absent")
		return "", false
	}
	return v, true
}

func (s *Store) Set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("redis set failed, write dropped")
	}
}

func (s *Store) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("redis del failed")
	}
}

func (s *Store) Incr(key string) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := s.client.Incr(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("redis incr failed")
		return 0
	}
	return n
}

func (s *Store) Decr(key string) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := decrFloorLua.Run(ctx, s.client, []string{s.prefix + key}).Int64()
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("redis decr failed")
		return 0
	}
	return n
}
