package usecase

import (
	"context"

	"github.com/dustin/go-humanize"
	domainCache "github.com/shiurnotes/shiurnotes/domains/cache"
	"github.com/shiurnotes/shiurnotes/infrastructure/cachestore"
	"github.com/sirupsen/logrus"
)

type cacheService struct {
	primary  domainCache.Store
	fallback *cachestore.FileStore
}

// NewCacheService builds the two-tier gateway. primary may be nil, in which
// case the file store serves every call for the life of the process.
func NewCacheService(primary domainCache.Store, fallback *cachestore.FileStore) domainCache.IGateway {
	return &cacheService{primary: primary, fallback: fallback}
}

func (s *cacheService) Backend() string {
	if s.primary != nil {
		return s.primary.Name()
	}
	return s.fallback.Name()
}

func (s *cacheService) Get(ctx context.Context, key string) (string, bool) {
	if s.primary != nil {
		value, found, err := s.primary.Get(ctx, key)
		if err == nil {
			return value, found
		}
		logrus.WithError(err).Warnf("[CACHE] %s get failed for %s, using file cache", s.primary.Name(), key)
	}

	value, found, err := s.fallback.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).Errorf("[CACHE] file get failed for %s, treating as miss", key)
		return "", false
	}
	return value, found
}

func (s *cacheService) Set(ctx context.Context, key string, value string) bool {
	if s.primary != nil {
		err := s.primary.Set(ctx, key, value)
		if err == nil {
			return true
		}
		logrus.WithError(err).Warnf("[CACHE] %s set failed for %s, using file cache", s.primary.Name(), key)
	}

	if err := s.fallback.Set(ctx, key, value); err != nil {
		logrus.WithError(err).Errorf("[CACHE] file set failed for %s", key)
		return false
	}
	return true
}

func (s *cacheService) Stats(ctx context.Context) domainCache.CacheStats {
	size := s.fallback.Size()
	return domainCache.CacheStats{
		Backend:   s.Backend(),
		Fallback:  s.fallback.Path(),
		Entries:   s.fallback.Len(),
		TotalSize: size,
		HumanSize: humanize.Bytes(uint64(size)),
	}
}
