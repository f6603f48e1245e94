package consumer

import (
	"context"

	kafkaDelivery "catalog-sync-srv/internal/indexing/delivery/kafka"
)

// ConsumeEntityUpdates starts consuming entity change events
func (c *Consumer) ConsumeEntityUpdates(ctx context.Context) error {
	// Create consumer group
	group, err := c.createConsumerGroup(kafkaDelivery.GroupIDEntityUpdate)
	if err != nil {
		return err
	}
	c.entityUpdateGroup = group

	// Create handler
	handler := &entityUpdateHandler{
		consumer: c,
	}

	// Start consuming in goroutine with context
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{kafkaDelivery.TopicEntityUpdate}, handler); err != nil {
					c.l.Errorf(ctx, "Consumer error: %v", err)
				}
			}
		}
	}()

	// Start error handler
	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", kafkaDelivery.TopicEntityUpdate)

	return nil
}

// ConsumeAttributeUpdates starts consuming attribute configuration change events
func (c *Consumer) ConsumeAttributeUpdates(ctx context.Context) error {
	// Create consumer group
	group, err := c.createConsumerGroup(kafkaDelivery.GroupIDAttributeUpdate)
	if err != nil {
		return err
	}
	c.attributeUpdateGroup = group

	// Create handler
	handler := &attributeUpdateHandler{
		consumer: c,
	}

	// Start consuming in goroutine with context
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{kafkaDelivery.TopicAttributeUpdate}, handler); err != nil {
					c.l.Errorf(ctx, "Consumer error: %v", err)
				}
			}
		}
	}()

	// Start error handler
	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", kafkaDelivery.TopicAttributeUpdate)

	return nil
}
