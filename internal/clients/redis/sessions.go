package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/utils"
)

// SessionStore keeps per-session state that outlives a single request but is
// not durable data: currently the set of achievements already unlocked this
// session, so a milestone only notifies once.
type SessionStore interface {
	UnlockedAchievements(ctx context.Context, userID string) (map[string]bool, error)
	MarkUnlocked(ctx context.Context, userID string, ids []string) error
	Clear(ctx context.Context, userID string) error
	Close() error
}

type sessionStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSessionStore(log *logger.Logger) (SessionStore, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("SESSION_TTL", 86400, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionStore{
		log: log.With("service", "RedisSessionStore"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func sessionKey(userID string) string {
	return "harmonynav:unlocked:" + userID
}

func (s *sessionStore) UnlockedAchievements(ctx context.Context, userID string) (map[string]bool, error) {
	ids, err := s.rdb.SMembers(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (s *sessionStore) MarkUnlocked(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	key := sessionKey(userID)
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.rdb.SAdd(ctx, key, members...).Err(); err != nil {
		return fmt.Errorf("redis sadd: %w", err)
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

func (s *sessionStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

func (s *sessionStore) Close() error {
	return s.rdb.Close()
}

// MemorySessionStore is the fallback when no REDIS_ADDR is configured.
// Unlocked state then lives for the lifetime of the process.
type MemorySessionStore struct {
	mu       sync.Mutex
	unlocked map[string]map[string]bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{unlocked: make(map[string]map[string]bool)}
}

func (m *MemorySessionStore) UnlockedAchievements(_ context.Context, userID string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.unlocked[userID]))
	for id := range m.unlocked[userID] {
		out[id] = true
	}
	return out, nil
}

func (m *MemorySessionStore) MarkUnlocked(_ context.Context, userID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.unlocked[userID]
	if set == nil {
		set = make(map[string]bool)
		m.unlocked[userID] = set
	}
	for _, id := range ids {
		set[id] = true
	}
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.unlocked, userID)
	return nil
}

func (m *MemorySessionStore) Close() error { return nil }
