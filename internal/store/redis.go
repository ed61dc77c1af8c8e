package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

const redisKeyPrefix = "ltcsim:"

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	UserID   string
}

// RedisStore keeps the progress document under a per-user key and saved
// simulations in a list
type RedisStore struct {
	client *redis.Client
	userID string
}

// OpenRedis connects and pings the server
func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, opts.UserID), nil
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, userID string) *RedisStore {
	if userID == "" {
		userID = "local"
	}
	return &RedisStore{client: client, userID: userID}
}

func (s *RedisStore) progressKey() string {
	return redisKeyPrefix + "progress:" + s.userID
}

func (s *RedisStore) simulationsKey() string {
	return redisKeyPrefix + "simulations"
}

// Load returns the saved progress, or a fresh state when nothing is saved
func (s *RedisStore) Load(ctx context.Context) (*domain.ProgressState, error) {
	data, err := s.client.Get(ctx, s.progressKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return freshState(s.userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var state domain.ProgressState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	state.EnsureMaps()
	return &state, nil
}

// Save replaces the progress document
func (s *RedisStore) Save(ctx context.Context, state *domain.ProgressState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.client.Set(ctx, s.progressKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// SaveSimulation pushes a saved simulation to the front of the list
func (s *RedisStore) SaveSimulation(ctx context.Context, rec domain.SavedSimulation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode simulation: %w", err)
	}
	if err := s.client.LPush(ctx, s.simulationsKey(), data).Err(); err != nil {
		return fmt.Errorf("save simulation %s: %w", rec.ID, err)
	}
	return nil
}

// ListSimulations returns saved simulations, newest first
func (s *RedisStore) ListSimulations(ctx context.Context) ([]domain.SavedSimulation, error) {
	items, err := s.client.LRange(ctx, s.simulationsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	out := make([]domain.SavedSimulation, 0, len(items))
	for _, item := range items {
		var rec domain.SavedSimulation
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode simulation: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
