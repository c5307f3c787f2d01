package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"baduk_arena/internal/domain/user"
)

const loginKeyPrefix = "login:"

type RedisSessionStorage struct {
	client *redis.Client
	log    *zap.SugaredLogger
	ttl    time.Duration
}

func NewSessionRedisStorage(redis *redis.Client, log *zap.SugaredLogger, ttl time.Duration) *RedisSessionStorage {
	return &RedisSessionStorage{
		client: redis,
		log:    log,
		ttl:    ttl,
	}
}

func (r *RedisSessionStorage) GetUserBySession(ctx context.Context, sessionID string) (user.User, bool) {
	v, err := r.client.Get(ctx, loginKeyPrefix+sessionID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Error(err)
		}
		return user.User{}, false
	}
	var u user.User
	if err = sonic.Unmarshal(v, &u); err != nil {
		r.log.Errorf("broken login session %s: %v", sessionID, err)
		return user.User{}, false
	}
	return u, true
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, sessionID string, u user.User) error {
	data, err := sonic.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", u.ID, err)
	}
	return r.client.Set(ctx, loginKeyPrefix+sessionID, data, r.ttl).Err()
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) (ok bool) {
	n, err := r.client.Del(ctx, loginKeyPrefix+sessionID).Result()
	if err != nil {
		r.log.Error(err)
		return false
	}
	return n > 0
}
