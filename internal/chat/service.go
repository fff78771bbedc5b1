package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const cacheTTL = 24 * time.Hour

// Cache memoizes completions. The Redis client satisfies it through
// RedisCache; tests use a map.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service answers prompts, serving repeats from the cache so the
// upstream is hit once per distinct prompt.
type Service struct {
	completer Completer
	cache     Cache
}

func NewService(completer Completer, cache Cache) *Service {
	return &Service{
		completer: completer,
		cache:     cache,
	}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "chat:" + hex.EncodeToString(sum[:])
}

func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	response = strings.ReplaceAll(response, "*", "")

	if err := s.cache.Set(ctx, key, response, cacheTTL); err != nil {
		return response, nil // cache failure is not a request failure
	}

	return response, nil
}
