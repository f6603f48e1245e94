package qdrant

import (
	"catalog-sync-srv/internal/indexing/repository"
	"catalog-sync-srv/pkg/log"
	pkgQdrant "catalog-sync-srv/pkg/qdrant"
)

// vectorSize is the dimension of the hashed term vectors attached to records.
const vectorSize = 128

// implRepository implements repository.SearchIndexRepository on Qdrant. One
// collection per api key keeps tenants fully partitioned.
type implRepository struct {
	l      log.Logger
	client pkgQdrant.IQdrant
}

// New creates a new Qdrant-backed search index repository
func New(l log.Logger, client pkgQdrant.IQdrant) repository.SearchIndexRepository {
	return &implRepository{
		l:      l,
		client: client,
	}
}
