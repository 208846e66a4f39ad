// workflow/assignments.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetverse/models"
	"assetverse/store"
)

// Assignments is the per-unit checkout ledger.
type Assignments struct {
	store *store.Store
	audit *Auditor
}

type DirectAssignInput struct {
	AssetID       string `json:"assetId"`
	EmployeeEmail string `json:"employeeEmail"`
}

// DirectAssign hands a unit to an already-affiliated employee without a
// request. The employee must hold an active affiliation with the calling
// HR; quota is therefore already consumed and only availability moves.
func (as *Assignments) DirectAssign(ctx context.Context, p models.Principal, in DirectAssignInput) (models.AssignedAsset, error) {
	if in.EmployeeEmail == "" {
		return models.AssignedAsset{}, errValidation("employeeEmail is required")
	}
	oid, err := parseID(in.AssetID)
	if err != nil {
		return models.AssignedAsset{}, err
	}

	var asset models.Asset
	err = as.store.Assets.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return models.AssignedAsset{}, errNotFound("asset not found")
	}
	if err != nil {
		return models.AssignedAsset{}, errInternal("asset lookup failed", err)
	}
	if asset.HREmail != p.Email {
		return models.AssignedAsset{}, errForbidden("asset belongs to another hr")
	}
	if asset.AvailableQuantity <= 0 {
		return models.AssignedAsset{}, errConflict("asset unavailable")
	}

	var affiliation models.Affiliation
	err = as.store.Affiliations.FindOne(ctx, bson.M{
		"employeeEmail": in.EmployeeEmail,
		"hrEmail":       p.Email,
		"status":        models.AffiliationActive,
	}).Decode(&affiliation)
	if err == mongo.ErrNoDocuments {
		return models.AssignedAsset{}, errConflict("employee has no active affiliation with this company")
	}
	if err != nil {
		return models.AssignedAsset{}, errInternal("affiliation lookup failed", err)
	}

	now := time.Now().UTC()
	assignment := models.AssignedAsset{
		ID:             primitive.NewObjectID(),
		AssetID:        asset.ID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		AssetImage:     asset.ProductImage,
		EmployeeEmail:  affiliation.EmployeeEmail,
		EmployeeName:   affiliation.EmployeeName,
		HREmail:        p.Email,
		CompanyName:    asset.CompanyName,
		AssignmentDate: now,
		Status:         models.AssignmentAssigned,
	}

	_, err = as.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		taken, err := as.store.TakeUnit(sc, asset.ID)
		if err != nil {
			return nil, err
		}
		if !taken {
			return nil, errConflict("asset unavailable")
		}
		if _, err := as.store.AssignedAssets.InsertOne(sc, assignment); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return models.AssignedAsset{}, wrapTxnErr(err, "direct assign transaction failed")
	}

	as.audit.Record(ctx, p, p.Email, "asset_assign", "assignedAsset", assignment.ID, bson.M{
		"assetName":     assignment.AssetName,
		"employeeEmail": assignment.EmployeeEmail,
	})

	return assignment, nil
}

// Return flips an assignment to returned and restores the asset's
// availability. Only the owning employee may return, and a record that is
// already returned is rejected rather than double-counted.
func (as *Assignments) Return(ctx context.Context, p models.Principal, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	var assignment models.AssignedAsset
	err = as.store.AssignedAssets.FindOne(ctx, bson.M{"_id": oid}).Decode(&assignment)
	if err == mongo.ErrNoDocuments {
		return errNotFound("assigned asset not found")
	}
	if err != nil {
		return errInternal("assignment lookup failed", err)
	}
	if assignment.EmployeeEmail != p.Email {
		return errForbidden("assignment belongs to another employee")
	}
	if assignment.Status == models.AssignmentReturned {
		return errConflict("asset already returned")
	}

	now := time.Now().UTC()

	_, err = as.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := as.store.AssignedAssets.UpdateOne(sc,
			bson.M{"_id": oid, "status": models.AssignmentAssigned},
			bson.M{"$set": bson.M{
				"status":     models.AssignmentReturned,
				"returnDate": now,
			}},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, errConflict("asset already returned")
		}
		if _, err := as.store.ReturnUnit(sc, assignment.AssetID); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return wrapTxnErr(err, "return transaction failed")
	}

	as.audit.Record(ctx, p, assignment.HREmail, "asset_return", "assignedAsset", oid, bson.M{
		"assetName":     assignment.AssetName,
		"employeeEmail": assignment.EmployeeEmail,
	})
	return nil
}

// ListByEmployee returns the caller's own assignments, newest first.
func (as *Assignments) ListByEmployee(ctx context.Context, p models.Principal, email string) ([]models.AssignedAsset, error) {
	if email == "" {
		return nil, errValidation("email is required")
	}
	if email != p.Email {
		return nil, errForbidden("cannot list another employee's assets")
	}

	opts := options.Find().SetSort(bson.D{{Key: "assignmentDate", Value: -1}})

	cursor, err := as.store.AssignedAssets.Find(ctx, bson.M{"employeeEmail": email}, opts)
	if err != nil {
		return nil, errInternal("assignment query failed", err)
	}
	defer cursor.Close(ctx)

	assignments := []models.AssignedAsset{}
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, errInternal("failed to decode assignments", err)
	}
	return assignments, nil
}
