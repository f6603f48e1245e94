package qdrant

import (
	"context"

	pb "github.com/qdrant/go-client/qdrant"
)

// UpsertPoints inserts or updates multiple points in a collection.
func (c *qdrantImpl) UpsertPoints(ctx context.Context, colName string, points []Point) error {
	if colName == "" {
		return ErrEmptyCollection
	}
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*pb.PointStruct, 0, len(points))
	for _, point := range points {
		if point.ID == "" {
			return ErrInvalidPointID
		}
		if len(point.Vector) == 0 {
			return ErrInvalidVector
		}

		payload, err := pb.TryValueMap(point.Payload)
		if err != nil {
			return WrapError(err, "failed to convert payload")
		}

		qdrantPoints = append(qdrantPoints, &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: point.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: point.Vector},
				},
			},
			Payload: payload,
		})
	}

	_, err := c.pointsClient.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: colName,
		Points:         qdrantPoints,
	})
	if err != nil {
		return WrapError(err, "failed to upsert points")
	}

	return nil
}

// DeletePoints deletes multiple points from a collection by ID.
func (c *qdrantImpl) DeletePoints(ctx context.Context, colName string, pointIDs []string) error {
	if colName == "" {
		return ErrEmptyCollection
	}
	if len(pointIDs) == 0 {
		return nil
	}

	ids := make([]*pb.PointId, 0, len(pointIDs))
	for _, id := range pointIDs {
		if id == "" {
			return ErrInvalidPointID
		}
		ids = append(ids, &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{Uuid: id},
		})
	}

	_, err := c.pointsClient.Delete(ctx, &pb.DeletePoints{
		CollectionName: colName,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{Ids: ids},
			},
		},
	})
	if err != nil {
		return WrapError(err, "failed to delete points")
	}

	return nil
}

// CountPoints returns the number of points in a collection.
func (c *qdrantImpl) CountPoints(ctx context.Context, colName string) (uint64, error) {
	if colName == "" {
		return 0, ErrEmptyCollection
	}

	resp, err := c.pointsClient.Count(ctx, &pb.CountPoints{
		CollectionName: colName,
	})
	if err != nil {
		return 0, WrapError(err, "failed to count points")
	}

	return resp.GetResult().GetCount(), nil
}
