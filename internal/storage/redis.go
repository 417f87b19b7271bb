package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/infinite-realms/engine/pkg/state"
)

const (
	gameStateKeyPrefix  = "gamestate:"
	sceneImageKeyPrefix = "image:"

	// saveSlotKey is the single fixed save slot, overwritten each time.
	saveSlotKey = "save:current"

	// gameStateTTL keeps abandoned sessions from accumulating. The save
	// slot itself never expires.
	gameStateTTL = 24 * time.Hour
)

// RedisStorage implements Storage backed by Redis. Gamestates and scene
// images are JSON blobs under prefixed keys; the save slot is one fixed
// key.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	key := gameStateKeyPrefix + id.String()
	if err := r.client.Set(ctx, key, string(data), gameStateTTL).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	key := gameStateKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	// Older saves may predate lore, equipment, effects or tutorials.
	gs.Normalize()
	return &gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	key := gameStateKeyPrefix + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) WriteSaveSlot(ctx context.Context, rec *SaveRecord) error {
	rec.Timestamp = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal save record: %w", err)
	}
	if err := r.client.Set(ctx, saveSlotKey, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to write save slot", "error", err)
		return fmt.Errorf("failed to write save slot: %w", err)
	}
	return nil
}

func (r *RedisStorage) ReadSaveSlot(ctx context.Context) (*SaveRecord, error) {
	data, err := r.client.Get(ctx, saveSlotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to read save slot", "error", err)
		return nil, fmt.Errorf("failed to read save slot: %w", err)
	}

	var rec SaveRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save record: %w", err)
	}
	if rec.GameState != nil {
		rec.GameState.Normalize()
	}
	return &rec, nil
}

func (r *RedisStorage) SaveSceneImage(ctx context.Context, id uuid.UUID, img *SceneImage) error {
	data, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("failed to marshal scene image: %w", err)
	}
	key := sceneImageKeyPrefix + id.String()
	if err := r.client.Set(ctx, key, string(data), gameStateTTL).Err(); err != nil {
		r.logger.Error("Failed to save scene image", "uuid", id, "error", err)
		return fmt.Errorf("failed to save scene image: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSceneImage(ctx context.Context, id uuid.UUID) (*SceneImage, error) {
	key := sceneImageKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load scene image: %w", err)
	}

	var img SceneImage
	if err := json.Unmarshal([]byte(data), &img); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene image: %w", err)
	}
	return &img, nil
}
