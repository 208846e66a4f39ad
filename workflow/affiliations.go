// workflow/affiliations.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetverse/models"
	"assetverse/store"
)

// Affiliations is the membership ledger between employees and HR companies.
type Affiliations struct {
	store *store.Store
	audit *Auditor
}

// AffiliationPage is the pagination envelope for active affiliations.
type AffiliationPage struct {
	Items []models.Affiliation `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ListActiveByHR returns the caller's active affiliations, newest first.
func (af *Affiliations) ListActiveByHR(ctx context.Context, p models.Principal, email string, page, limit int) (AffiliationPage, error) {
	if email == "" {
		return AffiliationPage{}, errValidation("email is required")
	}
	if email != p.Email {
		return AffiliationPage{}, errForbidden("cannot list another hr's affiliations")
	}
	page, limit = normalizePage(page, limit)

	filter := bson.M{"hrEmail": email, "status": models.AffiliationActive}

	total, err := af.store.Affiliations.CountDocuments(ctx, filter)
	if err != nil {
		return AffiliationPage{}, errInternal("affiliation count failed", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "affiliationDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := af.store.Affiliations.Find(ctx, filter, opts)
	if err != nil {
		return AffiliationPage{}, errInternal("affiliation query failed", err)
	}
	defer cursor.Close(ctx)

	items := []models.Affiliation{}
	if err = cursor.All(ctx, &items); err != nil {
		return AffiliationPage{}, errInternal("failed to decode affiliations", err)
	}

	return AffiliationPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// RemovalResult reports how many assignments were returned by the cascade.
type RemovalResult struct {
	AffiliationID  string `json:"affiliationId"`
	ReturnedAssets int    `json:"returnedAssets"`
	EmployeeEmail  string `json:"employeeEmail"`
	QuotaReleased  bool   `json:"quotaReleased"`
}

// Remove terminates an affiliation: the row flips to inactive, every
// still-assigned AssignedAsset of the (employee, HR) pair is returned with
// its asset's availability restored, and the HR's employee count drops by
// one, floored at zero. The whole cascade runs in a transaction.
func (af *Affiliations) Remove(ctx context.Context, p models.Principal, affiliationID string) (RemovalResult, error) {
	oid, err := parseID(affiliationID)
	if err != nil {
		return RemovalResult{}, err
	}

	var affiliation models.Affiliation
	err = af.store.Affiliations.FindOne(ctx, bson.M{"_id": oid}).Decode(&affiliation)
	if err == mongo.ErrNoDocuments {
		return RemovalResult{}, errNotFound("affiliation not found")
	}
	if err != nil {
		return RemovalResult{}, errInternal("affiliation lookup failed", err)
	}
	if affiliation.HREmail != p.Email {
		return RemovalResult{}, errForbidden("affiliation belongs to another hr")
	}
	if affiliation.Status != models.AffiliationActive {
		return RemovalResult{}, errConflict("affiliation already inactive")
	}

	now := time.Now().UTC()
	returned := 0

	_, err = af.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := af.store.Affiliations.UpdateOne(sc,
			bson.M{"_id": oid, "status": models.AffiliationActive},
			bson.M{"$set": bson.M{"status": models.AffiliationInactive}},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, errConflict("affiliation already inactive")
		}

		// Cascade: return every outstanding assignment of the pair one by
		// one so each asset's availability moves with its own guard.
		cursor, err := af.store.AssignedAssets.Find(sc, bson.M{
			"employeeEmail": affiliation.EmployeeEmail,
			"hrEmail":       affiliation.HREmail,
			"status":        models.AssignmentAssigned,
		})
		if err != nil {
			return nil, err
		}

		var assignments []models.AssignedAsset
		if err = cursor.All(sc, &assignments); err != nil {
			return nil, err
		}

		for _, assignment := range assignments {
			res, err := af.store.AssignedAssets.UpdateOne(sc,
				bson.M{"_id": assignment.ID, "status": models.AssignmentAssigned},
				bson.M{"$set": bson.M{
					"status":     models.AssignmentReturned,
					"returnDate": now,
				}},
			)
			if err != nil {
				return nil, err
			}
			if res.ModifiedCount == 0 {
				continue
			}
			if _, err := af.store.ReturnUnit(sc, assignment.AssetID); err != nil {
				return nil, err
			}
			returned++
		}

		if err := af.store.ReleaseQuota(sc, affiliation.HREmail); err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return RemovalResult{}, wrapTxnErr(err, "affiliation removal transaction failed")
	}

	af.audit.Record(ctx, p, affiliation.HREmail, "affiliation_remove", "affiliation", oid, bson.M{
		"employeeEmail":  affiliation.EmployeeEmail,
		"returnedAssets": returned,
	})

	return RemovalResult{
		AffiliationID:  oid.Hex(),
		ReturnedAssets: returned,
		EmployeeEmail:  affiliation.EmployeeEmail,
		QuotaReleased:  true,
	}, nil
}
