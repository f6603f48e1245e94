package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
)

// handleEntityUpdateMessage receives message, normalizes input, delegates to usecase (no business logic here).
func (c *Consumer) handleEntityUpdateMessage(msg *sarama.ConsumerMessage) error {
	ctx := context.Background()

	c.l.Infof(ctx, "indexing.delivery.kafka.consumer.handleEntityUpdateMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	// 1. Unmarshal message
	var message kafkaDelivery.EntityUpdateMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "indexing.delivery.kafka.consumer.handleEntityUpdateMessage: Invalid message format (skipping): %v", err)
		return nil // Skip invalid messages
	}

	// 2. Validate message (format only; business rules stay in usecase)
	if len(message.EntityIDs) == 0 {
		c.l.Warnf(ctx, "indexing.delivery.kafka.consumer.handleEntityUpdateMessage: Invalid message: no entity ids (skipping)")
		return nil
	}

	// 3. Map to usecase input (presenter)
	event := toEntityUpdateEvent(message)

	// 4. Call UseCase
	if err := c.uc.HandleEntityUpdate(ctx, event); err != nil {
		c.l.Errorf(ctx, "indexing.delivery.kafka.consumer.handleEntityUpdateMessage: usecase HandleEntityUpdate failed: %v", err)
		return fmt.Errorf("usecase error: %w", err)
	}

	c.l.Infof(ctx, "indexing.delivery.kafka.consumer.handleEntityUpdateMessage: Successfully processed update for %d entities",
		len(message.EntityIDs))
	return nil
}

// handleAttributeUpdateMessage receives message, normalizes input, delegates to usecase.
func (c *Consumer) handleAttributeUpdateMessage(msg *sarama.ConsumerMessage) error {
	ctx := context.Background()

	c.l.Infof(ctx, "indexing.delivery.kafka.consumer.handleAttributeUpdateMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	// 1. Unmarshal message
	var message kafkaDelivery.AttributeUpdateMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "indexing.delivery.kafka.consumer.handleAttributeUpdateMessage: Invalid message format (skipping): %v", err)
		return nil // Skip invalid messages
	}

	// 2. Validate message
	if len(message.AttributeIDs) == 0 {
		c.l.Warnf(ctx, "indexing.delivery.kafka.consumer.handleAttributeUpdateMessage: Invalid message: no attribute ids (skipping)")
		return nil
	}

	// 3. Map to usecase input (presenter)
	event := toAttributeUpdateEvent(message)

	// 4. Call UseCase
	if err := c.uc.HandleAttributeUpdate(ctx, event); err != nil {
		c.l.Errorf(ctx, "indexing.delivery.kafka.consumer.handleAttributeUpdateMessage: usecase HandleAttributeUpdate failed: %v", err)
		return fmt.Errorf("usecase error: %w", err)
	}

	c.l.Infof(ctx, "indexing.delivery.kafka.consumer.handleAttributeUpdateMessage: Successfully processed update for %d attributes",
		len(message.AttributeIDs))
	return nil
}
