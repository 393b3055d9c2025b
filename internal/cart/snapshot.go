package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/experium/bookingapi/internal/domain"
)

// SnapshotKey is the fixed key under which the cart item list persists
const SnapshotKey = "experium-cart"

// ErrNoSnapshot signals that no persisted cart exists yet
var ErrNoSnapshot = errors.New("no cart snapshot")

// Snapshots persists the cart item list between sessions. Only items
// are durable; the rest of the session resets on a fresh load.
type Snapshots interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}

// RedisSnapshots stores the item list as a JSON string in Redis
type RedisSnapshots struct {
	client *redis.Client
}

// NewRedisSnapshots creates a Redis-backed snapshot store
func NewRedisSnapshots(client *redis.Client) *RedisSnapshots {
	return &RedisSnapshots{client: client}
}

func (s *RedisSnapshots) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (s *RedisSnapshots) Save(ctx context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, SnapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// FileSnapshots stores the item list as a JSON file on local disk
type FileSnapshots struct {
	path string
}

// NewFileSnapshots creates a file-backed snapshot store in dir
func NewFileSnapshots(dir string) *FileSnapshots {
	return &FileSnapshots{path: filepath.Join(dir, SnapshotKey+".json")}
}

func (s *FileSnapshots) Load(_ context.Context) ([]domain.CartItem, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (s *FileSnapshots) Save(_ context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}
