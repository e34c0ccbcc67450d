package storage

import (
	"context"
	"encoding/json"
	"log"
	"sort"
)

// Collection is a typed view over one named collection of a Store.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](store Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) Put(ctx context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.name, id, data)
}

// Get returns one record. A record that fails to decode is logged and
// reported as ErrNotFound, matching how All skips it.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	data, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("[STORAGE] Malformed record %s/%s: %v", c.name, id, err)
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

// All returns every record ordered by id. Records that fail to decode are
// logged and skipped rather than failing the whole read.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raw, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var v T
		if err := json.Unmarshal(raw[id], &v); err != nil {
			log.Printf("[STORAGE] Skipping malformed record %s/%s: %v", c.name, id, err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
