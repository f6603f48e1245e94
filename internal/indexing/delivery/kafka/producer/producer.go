package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"catalog-sync-srv/internal/indexing"
	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
)

// PublishEntityUpdate publishes an entity change event
func (p *implProducer) PublishEntityUpdate(ctx context.Context, event indexing.EntityUpdateEvent) error {
	// Convert to message DTO
	msg := kafkaDelivery.EntityUpdateMessage{
		EntityType:       event.EntityType,
		EntityIDs:        event.EntityIDs,
		StoreIDs:         event.StoreIDs,
		CustomerGroupIDs: event.CustomerGroupIDs,
		EntitySubtypes:   event.EntitySubtypes,
		EmittedAt:        event.EmittedAt,
	}

	// Marshal to JSON
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal entity update event: %w", err)
	}

	// Publish to Kafka, keyed by entity type so one type stays ordered
	key := []byte(event.EntityType)
	if err := p.entityProducer.Publish(key, body); err != nil {
		return fmt.Errorf("failed to publish entity update event: %w", err)
	}

	p.l.Infof(ctx, "Published entity update event for %d entities of %s", len(event.EntityIDs), event.EntityType)
	return nil
}

// PublishAttributeUpdate publishes an attribute configuration change event
func (p *implProducer) PublishAttributeUpdate(ctx context.Context, event indexing.AttributeUpdateEvent) error {
	// Convert to message DTO
	msg := kafkaDelivery.AttributeUpdateMessage{
		AttributeIDs: event.AttributeIDs,
		StoreIDs:     event.StoreIDs,
		EmittedAt:    event.EmittedAt,
	}

	// Marshal to JSON
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal attribute update event: %w", err)
	}

	// Publish to Kafka, keyed by the first attribute id
	key := []byte(strconv.FormatInt(event.AttributeIDs[0], 10))
	if err := p.attributeProducer.Publish(key, body); err != nil {
		return fmt.Errorf("failed to publish attribute update event: %w", err)
	}

	p.l.Infof(ctx, "Published attribute update event for %d attributes", len(event.AttributeIDs))
	return nil
}
