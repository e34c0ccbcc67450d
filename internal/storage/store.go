package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrNotFound is returned when a record id is not present in a collection.
var ErrNotFound = errors.New("record not found")

// Store persists records grouped into named collections. Each record is
// addressed by its own id, so two writers touching different records of the
// same collection never overwrite each other.
type Store interface {
	Put(ctx context.Context, collection, id string, data []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) (map[string][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// Supported storage drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Open builds the store selected by driver. Redis and postgres settings are
// read from viper (see GetConfig and InitRedis).
func Open(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		log.Println("[STORAGE] Using in-memory record store")
		return NewMemoryStore(), nil
	case DriverRedis:
		client, err := InitRedis(ctx)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case DriverPostgres:
		db, err := InitDB()
		if err != nil {
			return nil, err
		}
		store := NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
