package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ruma/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "ruma:session:"

// RedisStore keeps each session as a JSON value with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return models.NewSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess, err := decodeSession(userID, data)
	if err != nil {
		s.logger.Warn("discarding unreadable session", zap.String("userId", userID), zap.Error(err))
		return models.NewSession(userID), nil
	}
	return sess, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, sess *models.Session) error {
	sess.UserID = userID
	sess.UpdatedAt = time.Now()
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(userID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// decodeSession parses a stored value. A payload that does not match its
// mode is reset to idle, keeping the admin flag.
func decodeSession(userID string, data []byte) (*models.Session, error) {
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	sess.UserID = userID
	if sess.Mode == "" {
		sess.Mode = models.ModeNone
	}
	if !sess.Consistent() {
		sess.Reset()
	}
	return &sess, nil
}
