package qdrant

import (
	"context"

	pb "github.com/qdrant/go-client/qdrant"
)

// CreateCollection creates a new collection in Qdrant.
func (c *qdrantImpl) CreateCollection(ctx context.Context, name string, vectorSize uint64, distance pb.Distance) error {
	if name == "" {
		return ErrEmptyCollection
	}
	if vectorSize == 0 {
		return ErrInvalidVectorSize
	}

	_, err := c.collectionsClient.Create(ctx, &pb.CreateCollection{
		CollectionName: name,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: distance,
				},
			},
		},
	})
	if err != nil {
		return WrapError(err, "failed to create collection")
	}

	return nil
}

// CollectionExists checks if a collection exists.
func (c *qdrantImpl) CollectionExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyCollection
	}

	resp, err := c.collectionsClient.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: name,
	})
	if err != nil {
		return false, nil
	}

	return resp != nil, nil
}

// EnsureCollection creates the collection if it does not exist yet.
func (c *qdrantImpl) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	exists, err := c.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.CreateCollection(ctx, name, vectorSize, pb.Distance_Cosine)
}
