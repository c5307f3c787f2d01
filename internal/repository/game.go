package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"baduk_arena/internal/bootstrap"
	"baduk_arena/internal/domain/game"
	errs "baduk_arena/internal/errors"
)

const (
	redisTimeout     = 5 * time.Second
	maxKeyAttempts   = 10
	sessionKeyPrefix = "session:"
	publicKeyPrefix  = "public:"
)

// GameRepository хранит живые партии снимками в redis,
// а завершённые архивирует в mongo.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
	ttl   time.Duration
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
		ttl:   cfg.SessionTTL(),
	}
}

// GenerateGameKeys выдаёт секретный ID партии и короткий публичный код
// для приглашения. Код резервируется в redis сразу.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		reserved, err := g.redis.SetNX(ctx, publicKeyPrefix+gameKeyPublic, gameKeySecret, g.ttl).Result()
		if err != nil {
			return "", "", fmt.Errorf("reserve public key: %w", err)
		}
		if reserved {
			return gameKeySecret, gameKeyPublic, nil
		}
	}
	return "", "", fmt.Errorf("no free public key after %d attempts", maxKeyAttempts)
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) SaveSession(ctx context.Context, s game.Session) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.ID, err)
	}
	_, err = g.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+s.ID, data, g.ttl)
		if s.PublicKey != "" {
			pipe.Set(ctx, publicKeyPrefix+s.PublicKey, s.ID, g.ttl)
		}
		return nil
	})
	if err != nil {
		g.log.Errorf("failed to save session %s: %v", s.ID, err)
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (g *GameRepository) LoadSession(ctx context.Context, id string) (game.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := g.redis.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Session{}, errs.ErrSessionNotFound
	} else if err != nil {
		return game.Session{}, fmt.Errorf("load session %s: %w", id, err)
	}

	var s game.Session
	if err = sonic.Unmarshal(data, &s); err != nil {
		return game.Session{}, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return s, nil
}

func (g *GameRepository) GetSessionIDByPublicKey(ctx context.Context, gameKeyPublic string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	id, err := g.redis.Get(ctx, publicKeyPrefix+gameKeyPublic).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrGameNotFound
	} else if err != nil {
		return "", fmt.Errorf("lookup public key %s: %w", gameKeyPublic, err)
	}
	return id, nil
}
