package kafka

import "github.com/IBM/sarama"

// Config holds configuration for a Kafka producer bound to one topic.
type Config struct {
	Brokers []string
	Topic   string
}

// ConsumerConfig holds configuration for a Kafka consumer group.
type ConsumerConfig struct {
	Brokers []string
	GroupID string
}

// producerImpl implements IProducer.
type producerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// consumerImpl implements IConsumer.
type consumerImpl struct {
	group  sarama.ConsumerGroup
	errors chan error
}
