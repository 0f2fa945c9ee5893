package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/cache"
)

var _ cache.LocationCache = (*LocationCache)(nil)

const keyPrefix = "safety:tourist:latest:"

type LocationCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewLocationCache(client goredis.Cmdable, ttl time.Duration) *LocationCache {
	return &LocationCache{client: client, ttl: ttl}
}

type cachedLocation struct {
	TouristID string  `json:"tourist_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

func (c *LocationCache) SetLatest(ctx context.Context, loc *domain.TouristLocation) error {
	body, err := json.Marshal(cachedLocation{
		TouristID: loc.TouristID,
		Latitude:  loc.Location.Lat,
		Longitude: loc.Location.Lon,
		Accuracy:  loc.Location.Accuracy,
		Timestamp: loc.Location.Timestamp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}
	return c.client.Set(ctx, key(loc.TouristID), body, c.ttl).Err()
}

func (c *LocationCache) GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error) {
	body, err := c.client.Get(ctx, key(touristID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cl cachedLocation
	if err := json.Unmarshal(body, &cl); err != nil {
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}
	return &domain.TouristLocation{
		TouristID: cl.TouristID,
		Location: domain.Location{
			Lat:       cl.Latitude,
			Lon:       cl.Longitude,
			Accuracy:  cl.Accuracy,
			Timestamp: time.Unix(cl.Timestamp, 0),
		},
	}, nil
}

func key(touristID string) string {
	return keyPrefix + touristID
}
