package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carrental-server/models"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/golog"
	"gorm.io/gorm"
)

const carsCacheKey = "cars:all"

func carCacheKey(id uint) string {
	return fmt.Sprintf("cars:%d", id)
}

// CarCatalog serves the read-only car catalog. Cache is optional; any cache
// failure falls through to the database.
type CarCatalog struct {
	DB    *gorm.DB
	Cache *redis.Client
	TTL   time.Duration
}

func NewCarCatalog(db *gorm.DB, cache *redis.Client, ttl time.Duration) *CarCatalog {
	return &CarCatalog{DB: db, Cache: cache, TTL: ttl}
}

func (s *CarCatalog) List(ctx context.Context) ([]models.Car, error) {
	cars := []models.Car{}
	if s.cacheGet(ctx, carsCacheKey, &cars) {
		return cars, nil
	}

	if err := s.DB.WithContext(ctx).Order("car_id ASC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	s.cacheSet(ctx, carsCacheKey, cars)
	return cars, nil
}

func (s *CarCatalog) Get(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	key := carCacheKey(id)
	if s.cacheGet(ctx, key, &car) {
		return &car, nil
	}

	if err := s.DB.WithContext(ctx).First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	s.cacheSet(ctx, key, car)
	return &car, nil
}

func (s *CarCatalog) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	b, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			golog.Warnf("car cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		golog.Warnf("car cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *CarCatalog) cacheSet(ctx context.Context, key string, v any) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		golog.Warnf("car cache encode %s: %v", key, err)
		return
	}
	if err := s.Cache.Set(ctx, key, b, s.TTL).Err(); err != nil {
		golog.Warnf("car cache set %s: %v", key, err)
	}
}
