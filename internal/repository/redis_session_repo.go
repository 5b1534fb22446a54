package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AchintyaNigam/my-rail/internal/flow"
)

const (
	sessionKeyPrefix = "booking:session:"
	lockKeyPrefix    = "booking:lock:"
)

// unlockScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another request is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSessionRepository struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	log     *logrus.Logger
}

// NewRedisSessionRepository stores sessions under booking:session:<id>, each
// write refreshing ttl. lockTTL bounds how long a crashed payment can hold a
// session.
func NewRedisSessionRepository(rdb *redis.Client, ttl, lockTTL time.Duration, log *logrus.Logger) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl, lockTTL: lockTTL, log: log}
}

func (r *redisSessionRepository) Save(ctx context.Context, s *flow.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+s.ID, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*flow.Session, error) {
	b, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s flow.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *redisSessionRepository) Lock(ctx context.Context, id string) (func(), error) {
	key := lockKeyPrefix + id
	token := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, key, token, r.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock session: %w", err)
	}
	if !ok {
		return nil, ErrSessionBusy
	}

	return func() {
		// the request context may already be done by now
		if err := unlockScript.Run(context.Background(), r.rdb, []string{key}, token).Err(); err != nil {
			r.log.WithError(err).WithField("session_id", id).Debug("[Redis] unlock failed, lock left to expire")
		}
	}, nil
}
