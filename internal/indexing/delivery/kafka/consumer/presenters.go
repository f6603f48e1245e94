package consumer

import (
	"catalog-sync-srv/internal/indexing"
	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
)

// toEntityUpdateEvent maps Kafka message DTO to usecase input (delivery → usecase boundary).
func toEntityUpdateEvent(m kafkaDelivery.EntityUpdateMessage) indexing.EntityUpdateEvent {
	return indexing.EntityUpdateEvent{
		EntityType:       m.EntityType,
		EntityIDs:        m.EntityIDs,
		StoreIDs:         m.StoreIDs,
		CustomerGroupIDs: m.CustomerGroupIDs,
		EntitySubtypes:   m.EntitySubtypes,
		EmittedAt:        m.EmittedAt,
	}
}

func toAttributeUpdateEvent(m kafkaDelivery.AttributeUpdateMessage) indexing.AttributeUpdateEvent {
	return indexing.AttributeUpdateEvent{
		AttributeIDs: m.AttributeIDs,
		StoreIDs:     m.StoreIDs,
		EmittedAt:    m.EmittedAt,
	}
}
