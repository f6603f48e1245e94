package redis

import (
	"catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/pkg/log"
	pkgRedis "catalog-sync-srv/pkg/redis"
)

// implRepository implements repository.CacheRepository on Redis.
type implRepository struct {
	l     log.Logger
	redis pkgRedis.IRedis
}

// New creates a new Redis-backed cache repository for the indexing domain
func New(l log.Logger, redis pkgRedis.IRedis) repository.CacheRepository {
	return &implRepository{
		l:     l,
		redis: redis,
	}
}
