package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"gorm.io/gorm"
)

// KVStore exposes a KVRepository as a storage.Store.
type KVStore struct {
	db   *gorm.DB
	repo KVRepository
}

func NewKVStore(db *gorm.DB, repo KVRepository) *KVStore {
	return &KVStore{db: db, repo: repo}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.repo.Find(s.db.WithContext(ctx), key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(s.db.WithContext(ctx), key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.repo.Delete(s.db.WithContext(ctx), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) RemovePrefix(ctx context.Context, prefix string) error {
	if _, err := s.repo.DeleteByPrefix(s.db.WithContext(ctx), prefix); err != nil {
		return fmt.Errorf("delete prefix %s: %w", prefix, err)
	}
	return nil
}
