package producer

import (
	"catalog-sync-srv/internal/indexing"
	pkgKafka "catalog-sync-srv/pkg/kafka"
	"catalog-sync-srv/pkg/log"
)

// Producer interface for indexing domain
type Producer interface {
	indexing.Producer
}

// implProducer implements the Producer interface
type implProducer struct {
	l                 log.Logger
	entityProducer    pkgKafka.IProducer
	attributeProducer pkgKafka.IProducer
}

// New creates a new indexing producer. Each producer is bound to its topic.
func New(l log.Logger, entityProducer, attributeProducer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:                 l,
		entityProducer:    entityProducer,
		attributeProducer: attributeProducer,
	}
}
