package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dermAssist/domain"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 1 * time.Hour

// RecommendationCache stores assembled recommendation lists per
// user+analysis so repeated dashboard loads skip the LLM round trip.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    defaultTTL,
	}
}

func cacheKey(userID uint, analysisID string) string {
	return fmt.Sprintf("rec:user:%d:analysis:%s", userID, analysisID)
}

func (r *RecommendationCache) Get(ctx context.Context, userID uint, analysisID string) ([]domain.Recommendation, error) {
	val, err := r.client.Get(ctx, cacheKey(userID, analysisID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, nil
}

func (r *RecommendationCache) Set(ctx context.Context, userID uint, analysisID string, recs []domain.Recommendation) error {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	err = r.client.Set(ctx, cacheKey(userID, analysisID), jsonData, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached result, e.g. after the profile changes.
func (r *RecommendationCache) Invalidate(ctx context.Context, userID uint, analysisID string) error {
	if err := r.client.Del(ctx, cacheKey(userID, analysisID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached recommendations: %w", err)
	}

	return nil
}
