package database

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/yeremiapane/koko-king/models"
)

// Persisted keys. Each holds one JSON array.
const (
	KeyOrders              = "orders"
	KeyBranches            = "branches"
	KeyCustomMenuItems     = "customMenuItems"
	KeyDeletedDefaultItems = "deletedDefaultItems"
	KeyDrivers             = "drivers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BlobStore is the persistence boundary: whole values under string keys.
// Get returns nil, nil when the key has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// LoadList decodes the list stored under key. An absent key is an empty list.
func LoadList[T any](ctx context.Context, store BlobStore, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, unavailable("decode", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// SaveList replaces the whole list stored under key.
func SaveList[T any](ctx context.Context, store BlobStore, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return unavailable("encode", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func unavailable(op, key string, err error) error {
	if sErr, ok := err.(*models.StorageUnavailableError); ok {
		return sErr
	}
	return &models.StorageUnavailableError{Op: op, Key: key, Err: err}
}

// MemoryStore keeps blobs in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
