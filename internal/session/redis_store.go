package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// redisStore implements Store using Redis string keys with a TTL
type redisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(cfg RedisConfig, logger *slog.Logger) (Store, error) {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("key_prefix", cfg.KeyPrefix),
	)

	return newRedisStore(client, cfg, logger), nil
}

func newRedisStore(client *redis.Client, cfg RedisConfig, logger *slog.Logger) *redisStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "dashboard:session:"
	}
	return &redisStore{
		client:    client,
		keyPrefix: prefix,
		ttl:       cfg.TTL,
		logger:    logger,
	}
}

func (s *redisStore) key(id string) string {
	return s.keyPrefix + id
}

// Create saves state under a new session ID
func (s *redisStore) Create(ctx context.Context, state models.QueryState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session state: %w", err)
	}

	id := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.key(id), data, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return "", models.ErrConflictWithMsg(fmt.Sprintf("session %s already exists", id))
	}

	s.logger.Debug("session created", slog.String("session_id", id))
	return id, nil
}

// Get loads a session and slides its expiry
func (s *redisStore) Get(ctx context.Context, id string) (models.QueryState, error) {
	data, err := s.client.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.QueryState{}, notFound(id)
		}
		return models.QueryState{}, fmt.Errorf("failed to load session: %w", err)
	}

	var state models.QueryState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Error("failed to unmarshal session state",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return models.QueryState{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return state, nil
}

// Save replaces the state of an existing session
func (s *redisStore) Save(ctx context.Context, id string, state models.QueryState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	// SET XX only writes when the key still exists, so expired sessions stay gone
	ok, err := s.client.SetXX(ctx, s.key(id), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !ok {
		return notFound(id)
	}

	return nil
}

// Delete drops a session
func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Health checks if Redis is healthy
func (s *redisStore) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *redisStore) Close() error {
	s.logger.Info("closing Redis connection")
	return s.client.Close()
}
