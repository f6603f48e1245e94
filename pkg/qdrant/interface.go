package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// IQdrant aggregates the Qdrant operations used by this service.
type IQdrant interface {
	CollectionsOps
	PointsOps
	Close() error
	Ping(ctx context.Context) error
}

// CollectionsOps defines the collection-related operations.
type CollectionsOps interface {
	CreateCollection(ctx context.Context, name string, vectorSize uint64, distance pb.Distance) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error
}

// PointsOps defines the point-related operations.
type PointsOps interface {
	UpsertPoints(ctx context.Context, colName string, points []Point) error
	DeletePoints(ctx context.Context, colName string, pointIDs []string) error
	CountPoints(ctx context.Context, colName string) (uint64, error)
}

// NewQdrant creates a new Qdrant client. Returns an implementation of IQdrant.
func NewQdrant(cfg QdrantConfig) (IQdrant, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	client := &qdrantImpl{
		conn:              conn,
		pointsClient:      pb.NewPointsClient(conn),
		collectionsClient: pb.NewCollectionsClient(conn),
		defaultTimeout:    cfg.Timeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping Qdrant: %w", err)
	}

	return client, nil
}
