// workflow/requests.go
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

// Requests is the request lifecycle state machine: pending → approved or
// rejected, both terminal. Approval is the compound transition that touches
// the inventory, affiliation and assignment ledgers in one transaction.
type Requests struct {
	store *store.Store
	audit *Auditor
}

// Submit inserts a pending request carrying a snapshot of the asset's name
// and type plus the requester's identity. No inventory or affiliation side
// effects happen at submit time.
func (rw *Requests) Submit(ctx context.Context, p models.Principal, assetID, note string) (models.Request, error) {
	oid, err := parseID(assetID)
	if err != nil {
		return models.Request{}, err
	}

	var asset models.Asset
	err = rw.store.Assets.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return models.Request{}, errNotFound("asset not found")
	}
	if err != nil {
		return models.Request{}, errInternal("asset lookup failed", err)
	}

	req := models.Request{
		ID:             primitive.NewObjectID(),
		AssetID:        asset.ID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		RequesterEmail: p.Email,
		RequesterName:  p.Name,
		HREmail:        asset.HREmail,
		CompanyName:    asset.CompanyName,
		Note:           note,
		RequestDate:    time.Now().UTC(),
		RequestStatus:  models.RequestPending,
	}

	if _, err := rw.store.Requests.InsertOne(ctx, req); err != nil {
		return models.Request{}, errInternal("failed to create request", err)
	}

	rw.audit.Record(ctx, p, req.HREmail, "request_submit", "request", req.ID, bson.M{
		"assetName": req.AssetName,
		"requester": req.RequesterEmail,
	})

	return req, nil
}

// ApprovalResult reports the outcome of an approval, including whether a
// new affiliation was created for the (employee, HR) pair.
type ApprovalResult struct {
	RequestID      string `json:"requestId"`
	AssignmentID   string `json:"assignmentId"`
	NewAffiliation bool   `json:"newAffiliation"`
}

// Approve moves a pending request to approved and applies the compound
// effect: take one unit of inventory, create an affiliation (consuming
// quota) when the pair has no active one, and record the assignment. The
// whole effect runs in a transaction; each inner write is additionally a
// conditional single-document update so concurrent approvals cannot drive
// availability negative or blow past the package limit.
//
// Preconditions are checked in order and fail fast: request pending, caller
// owns it, HR record exists, asset has availability, quota has room (only
// when a new affiliation would be created).
func (rw *Requests) Approve(ctx context.Context, p models.Principal, requestID string) (ApprovalResult, error) {
	oid, err := parseID(requestID)
	if err != nil {
		return ApprovalResult{}, err
	}

	var req models.Request
	err = rw.store.Requests.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return ApprovalResult{}, errNotFound("request not found")
	}
	if err != nil {
		return ApprovalResult{}, errInternal("request lookup failed", err)
	}
	if req.RequestStatus != models.RequestPending {
		return ApprovalResult{}, errConflict("request already decided")
	}
	if req.HREmail != p.Email {
		return ApprovalResult{}, errForbidden("request belongs to another hr")
	}

	var hr models.HRAccount
	err = rw.store.HRs.FindOne(ctx, bson.M{"email": req.HREmail}).Decode(&hr)
	if err == mongo.ErrNoDocuments {
		return ApprovalResult{}, errNotFound("hr account not found")
	}
	if err != nil {
		return ApprovalResult{}, errInternal("hr lookup failed", err)
	}

	var asset models.Asset
	err = rw.store.Assets.FindOne(ctx, bson.M{"_id": req.AssetID}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return ApprovalResult{}, errNotFound("asset not found")
	}
	if err != nil {
		return ApprovalResult{}, errInternal("asset lookup failed", err)
	}
	if asset.AvailableQuantity <= 0 {
		return ApprovalResult{}, errConflict("asset unavailable")
	}

	hasActive, err := rw.hasActiveAffiliation(ctx, req.RequesterEmail, req.HREmail)
	if err != nil {
		return ApprovalResult{}, err
	}
	if !hasActive && hr.CurrentEmployees >= hr.PackageLimit {
		return ApprovalResult{}, errConflict("employee quota exceeded")
	}

	now := time.Now().UTC()
	assignmentID := primitive.NewObjectID()
	newAffiliation := false

	_, err = rw.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Flip the request first, conditional on it still being pending.
		// A concurrent approval loses here and the transaction aborts
		// before touching inventory.
		res, err := rw.store.Requests.UpdateOne(sc,
			bson.M{"_id": oid, "requestStatus": models.RequestPending},
			bson.M{"$set": bson.M{
				"requestStatus": models.RequestApproved,
				"approvalDate":  now,
				"processedBy":   p.Email,
			}},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, errConflict("request already decided")
		}

		taken, err := rw.store.TakeUnit(sc, req.AssetID)
		if err != nil {
			return nil, err
		}
		if !taken {
			return nil, errConflict("asset unavailable")
		}

		// Re-check the affiliation inside the transaction; the pre-check
		// outside only exists for fast-fail ordering.
		active, err := rw.hasActiveAffiliation(sc, req.RequesterEmail, req.HREmail)
		if err != nil {
			return nil, err
		}
		if !active {
			ok, err := rw.store.ConsumeQuota(sc, req.HREmail)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errConflict("employee quota exceeded")
			}

			affiliation := models.Affiliation{
				ID:              primitive.NewObjectID(),
				EmployeeEmail:   req.RequesterEmail,
				EmployeeName:    req.RequesterName,
				HREmail:         req.HREmail,
				CompanyName:     hr.CompanyName,
				CompanyLogo:     hr.CompanyLogo,
				AffiliationDate: now,
				Status:          models.AffiliationActive,
			}
			if _, err := rw.store.Affiliations.InsertOne(sc, affiliation); err != nil {
				return nil, err
			}
			newAffiliation = true
		}

		assignment := models.AssignedAsset{
			ID:             assignmentID,
			AssetID:        asset.ID,
			AssetName:      asset.ProductName,
			AssetType:      asset.ProductType,
			AssetImage:     asset.ProductImage,
			EmployeeEmail:  req.RequesterEmail,
			EmployeeName:   req.RequesterName,
			HREmail:        req.HREmail,
			CompanyName:    hr.CompanyName,
			AssignmentDate: now,
			Status:         models.AssignmentAssigned,
		}
		if _, err := rw.store.AssignedAssets.InsertOne(sc, assignment); err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return ApprovalResult{}, wrapTxnErr(err, "approval transaction failed")
	}

	rw.audit.Record(ctx, p, req.HREmail, "request_approve", "request", oid, bson.M{
		"assetName":      req.AssetName,
		"requester":      req.RequesterEmail,
		"newAffiliation": newAffiliation,
	})

	return ApprovalResult{
		RequestID:      oid.Hex(),
		AssignmentID:   assignmentID.Hex(),
		NewAffiliation: newAffiliation,
	}, nil
}

// Reject moves a pending request to rejected. No inventory or affiliation
// side effects. A request that is already decided reports not found rather
// than destructively re-deciding.
func (rw *Requests) Reject(ctx context.Context, p models.Principal, requestID string) error {
	oid, err := parseID(requestID)
	if err != nil {
		return err
	}

	var req models.Request
	err = rw.store.Requests.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return errNotFound("request not found")
	}
	if err != nil {
		return errInternal("request lookup failed", err)
	}
	if req.HREmail != p.Email {
		return errForbidden("request belongs to another hr")
	}

	result, err := rw.store.Requests.UpdateOne(ctx,
		bson.M{"_id": oid, "requestStatus": models.RequestPending},
		bson.M{"$set": bson.M{
			"requestStatus": models.RequestRejected,
			"approvalDate":  time.Now().UTC(),
			"processedBy":   p.Email,
		}},
	)
	if err != nil {
		return errInternal("failed to reject request", err)
	}
	if result.ModifiedCount == 0 {
		return errNotFound("no pending request to reject")
	}

	rw.audit.Record(ctx, p, req.HREmail, "request_reject", "request", oid, bson.M{
		"assetName": req.AssetName,
		"requester": req.RequesterEmail,
	})
	return nil
}

// ListByHR returns all requests addressed to the calling HR, newest first.
func (rw *Requests) ListByHR(ctx context.Context, p models.Principal, email string) ([]models.Request, error) {
	if email == "" {
		return nil, errValidation("email is required")
	}
	if email != p.Email {
		return nil, errForbidden("cannot list another hr's requests")
	}

	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: -1}})

	cursor, err := rw.store.Requests.Find(ctx, bson.M{"hrEmail": email}, opts)
	if err != nil {
		return nil, errInternal("request query failed", err)
	}
	defer cursor.Close(ctx)

	requests := []models.Request{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, errInternal("failed to decode requests", err)
	}
	return requests, nil
}

func (rw *Requests) hasActiveAffiliation(ctx context.Context, employeeEmail, hrEmail string) (bool, error) {
	err := rw.store.Affiliations.FindOne(ctx, bson.M{
		"employeeEmail": employeeEmail,
		"hrEmail":       hrEmail,
		"status":        models.AffiliationActive,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, errInternal("affiliation lookup failed", err)
	}
	return true, nil
}
