// Package cache decorates repositories with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"devevent/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	slugKeyPrefix = "cache:events:slug:"
	idKeyPrefix   = "cache:events:id:"
)

// eventRepository caches single event lookups. Events are never updated
// after creation, so entries only expire by TTL.
type eventRepository struct {
	domain.EventRepository
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewEventRepository wraps next so GetBySlug and GetByID are served from
// Redis when possible. Redis failures are logged and fall through to next.
func NewEventRepository(next domain.EventRepository, rdb redis.UniversalClient, ttl time.Duration, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{
		EventRepository: next,
		rdb:             rdb,
		ttl:             ttl,
		logger:          logger,
	}
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.readThrough(ctx, slugKeyPrefix+slug, func() (*domain.Event, error) {
		return r.EventRepository.GetBySlug(ctx, slug)
	})
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.readThrough(ctx, idKeyPrefix+id, func() (*domain.Event, error) {
		return r.EventRepository.GetByID(ctx, id)
	})
}

func (r *eventRepository) readThrough(ctx context.Context, key string, load func() (*domain.Event, error)) (*domain.Event, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var e domain.Event
		if err := json.Unmarshal(b, &e); err == nil {
			return &e, nil
		}
		r.logger.WarnContext(ctx, "discarding corrupt cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "event cache read failed", "key", key, "err", err)
	}

	e, err := load()
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(e); err == nil {
		if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "event cache write failed", "key", key, "err", err)
		}
	}
	return e, nil
}
