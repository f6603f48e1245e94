package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type entityUpdateHandler struct {
	consumer *Consumer
}

func (h *entityUpdateHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *entityUpdateHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *entityUpdateHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleEntityUpdateMessage(msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "indexing.delivery.kafka.consumer.ConsumeEntityUpdates: Failed to process entity update message: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

type attributeUpdateHandler struct {
	consumer *Consumer
}

func (h *attributeUpdateHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *attributeUpdateHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *attributeUpdateHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleAttributeUpdateMessage(msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "indexing.delivery.kafka.consumer.ConsumeAttributeUpdates: Failed to process attribute update message: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
