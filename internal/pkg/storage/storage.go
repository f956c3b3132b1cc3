package storage

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a flat string key-value store. Writes are applied immediately;
// concurrent writers to the same key resolve as last write wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// PrefixRemover is implemented by stores that can drop every key sharing a prefix.
type PrefixRemover interface {
	RemovePrefix(ctx context.Context, prefix string) error
}

// GetOr returns the stored value or def when the key is missing.
func GetOr(ctx context.Context, s Store, key, def string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

type scoped struct {
	base   Store
	prefix string
}

// Scoped namespaces every key of base under scope. It is used to give each
// browser its own view of a shared backend.
func Scoped(base Store, scope string) Store {
	return &scoped{base: base, prefix: scope + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.base.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.base.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.base.Remove(ctx, s.prefix+key)
}

func (s *scoped) RemovePrefix(ctx context.Context, prefix string) error {
	pr, ok := s.base.(PrefixRemover)
	if !ok {
		return errors.New("storage: backend cannot remove by prefix")
	}
	return pr.RemovePrefix(ctx, s.prefix+prefix)
}

// Scope returns the namespace of a store created by Scoped, or "" for an unscoped store.
func Scope(s Store) string {
	if sc, ok := s.(*scoped); ok {
		return strings.TrimSuffix(sc.prefix, ":")
	}
	return ""
}
