package qdrant

import "time"

// QdrantConfig holds Qdrant connection configuration.
type QdrantConfig struct {
	Host    string
	Port    int
	UseTLS  bool
	APIKey  string
	Timeout time.Duration
}

// Point represents a vector point in Qdrant.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]interface{}
}

// CollectionInfo represents collection metadata.
type CollectionInfo struct {
	Name        string
	VectorSize  uint64
	PointsCount uint64
	Status      string
}
