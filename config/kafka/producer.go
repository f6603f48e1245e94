package kafka

import (
	"fmt"
	"sync"

	"catalog-sync-srv/config"
	"catalog-sync-srv/pkg/kafka"
)

var (
	producerInstances map[string]kafka.IProducer
	producerMu        sync.RWMutex
)

// ConnectProducer initializes a Kafka producer for the given topic using
// singleton-per-topic pattern. Safe for concurrent use. Returns the existing
// instance if one was already created for the topic.
func ConnectProducer(cfg config.KafkaConfig, topic string) (kafka.IProducer, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required for Kafka producer")
	}

	producerMu.Lock()
	defer producerMu.Unlock()

	if producerInstances == nil {
		producerInstances = make(map[string]kafka.IProducer)
	}
	if p, ok := producerInstances[topic]; ok {
		return p, nil
	}

	clientCfg := kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   topic,
	}

	client, err := kafka.NewProducer(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
	}

	producerInstances[topic] = client
	return client, nil
}

// GetProducer returns the singleton Kafka producer for the topic.
// Panics if the producer is not initialized. Call ConnectProducer() first.
func GetProducer(topic string) kafka.IProducer {
	producerMu.RLock()
	defer producerMu.RUnlock()

	p, ok := producerInstances[topic]
	if !ok {
		panic("Kafka producer not initialized. Call ConnectProducer() first")
	}
	return p
}

// ProducerHealthCheck checks all initialized Kafka producers.
func ProducerHealthCheck() error {
	producerMu.RLock()
	defer producerMu.RUnlock()

	if len(producerInstances) == 0 {
		return fmt.Errorf("Kafka producer not initialized")
	}
	for topic, p := range producerInstances {
		if err := p.HealthCheck(); err != nil {
			return fmt.Errorf("Kafka producer for topic %s unhealthy: %w", topic, err)
		}
	}
	return nil
}

// DisconnectProducers closes all Kafka producers and resets the singletons.
func DisconnectProducers() error {
	producerMu.Lock()
	defer producerMu.Unlock()

	for topic, p := range producerInstances {
		if err := p.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer for topic %s: %w", topic, err)
		}
		delete(producerInstances, topic)
	}
	return nil
}
