package kafka

import (
	"time"
)

const (
	TopicEntityUpdate    = "klevu_indexing_entity_update"
	TopicAttributeUpdate = "klevu_indexing_attribute_update"

	GroupIDEntityUpdate    = "catalog-sync-entity-update"
	GroupIDAttributeUpdate = "catalog-sync-attribute-update"
)

// EntityUpdateMessage - Kafka message cho klevu_indexing_entity_update
type EntityUpdateMessage struct {
	EntityType       string    `json:"entity_type"`
	EntityIDs        []int64   `json:"entity_ids"`
	StoreIDs         []int64   `json:"store_ids"`
	CustomerGroupIDs []int64   `json:"customer_group_ids"`
	EntitySubtypes   []string  `json:"entity_subtypes"`
	EmittedAt        time.Time `json:"emitted_at"`
}

// AttributeUpdateMessage - Kafka message cho klevu_indexing_attribute_update
type AttributeUpdateMessage struct {
	AttributeIDs []int64   `json:"attribute_ids"`
	StoreIDs     []int64   `json:"store_ids"`
	EmittedAt    time.Time `json:"emitted_at"`
}
