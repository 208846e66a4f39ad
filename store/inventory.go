// store/inventory.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TakeUnit atomically decrements an asset's availability by one. The filter
// guards availableQuantity > 0 so concurrent takers can never drive the
// count negative. Returns false when no unit was available.
func (s *Store) TakeUnit(ctx context.Context, assetID primitive.ObjectID) (bool, error) {
	result, err := s.Assets.UpdateOne(ctx,
		bson.M{"_id": assetID, "availableQuantity": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"availableQuantity": -1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// ReturnUnit atomically increments an asset's availability by one, guarded
// so it can never exceed productQuantity. Returns false when the asset is
// missing or already at capacity.
func (s *Store) ReturnUnit(ctx context.Context, assetID primitive.ObjectID) (bool, error) {
	result, err := s.Assets.UpdateOne(ctx,
		bson.M{
			"_id":   assetID,
			"$expr": bson.M{"$lt": bson.A{"$availableQuantity", "$productQuantity"}},
		},
		bson.M{"$inc": bson.M{"availableQuantity": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// ConsumeQuota atomically increments an HR's employee count, guarded by the
// package limit. Returns false when the quota is already full.
func (s *Store) ConsumeQuota(ctx context.Context, hrEmail string) (bool, error) {
	result, err := s.HRs.UpdateOne(ctx,
		bson.M{
			"email": hrEmail,
			"$expr": bson.M{"$lt": bson.A{"$currentEmployees", "$packageLimit"}},
		},
		bson.M{"$inc": bson.M{"currentEmployees": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// ReleaseQuota decrements an HR's employee count, floored at zero.
func (s *Store) ReleaseQuota(ctx context.Context, hrEmail string) error {
	_, err := s.HRs.UpdateOne(ctx,
		bson.M{"email": hrEmail, "currentEmployees": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"currentEmployees": -1}},
	)
	return err
}
