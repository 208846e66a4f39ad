// workflow/inventory.go
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

// Inventory is the asset ledger: creation, lookup, resize and deletion.
// The per-unit take/return movements live on the store as conditional
// single-document updates and are driven by the request and assignment
// workflows.
type Inventory struct {
	store *store.Store
	audit *Auditor
}

type CreateAssetInput struct {
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"`
	ProductImage    string `json:"productImage"`
	ProductQuantity int    `json:"productQuantity"`
}

func (inv *Inventory) Create(ctx context.Context, p models.Principal, in CreateAssetInput) (models.Asset, error) {
	if in.ProductName == "" || in.ProductType == "" {
		return models.Asset{}, errValidation("productName and productType are required")
	}
	if in.ProductQuantity <= 0 {
		return models.Asset{}, errValidation("productQuantity must be a positive integer")
	}

	var hr models.HRAccount
	err := inv.store.HRs.FindOne(ctx, bson.M{"email": p.Email}).Decode(&hr)
	if err == mongo.ErrNoDocuments {
		return models.Asset{}, errNotFound("hr account not found")
	}
	if err != nil {
		return models.Asset{}, errInternal("hr lookup failed", err)
	}

	asset := models.Asset{
		ID:                primitive.NewObjectID(),
		ProductName:       in.ProductName,
		ProductType:       in.ProductType,
		ProductImage:      in.ProductImage,
		ProductQuantity:   in.ProductQuantity,
		AvailableQuantity: in.ProductQuantity,
		HREmail:           p.Email,
		CompanyName:       hr.CompanyName,
		DateAdded:         time.Now().UTC(),
	}

	if _, err := inv.store.Assets.InsertOne(ctx, asset); err != nil {
		return models.Asset{}, errInternal("failed to create asset", err)
	}

	inv.audit.Record(ctx, p, p.Email, "asset_create", "asset", asset.ID, bson.M{
		"productName":     asset.ProductName,
		"productQuantity": asset.ProductQuantity,
	})

	return asset, nil
}

func (inv *Inventory) Get(ctx context.Context, id string) (models.Asset, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Asset{}, err
	}

	var asset models.Asset
	err = inv.store.Assets.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return models.Asset{}, errNotFound("asset not found")
	}
	if err != nil {
		return models.Asset{}, errInternal("asset lookup failed", err)
	}
	return asset, nil
}

func (inv *Inventory) ListAll(ctx context.Context) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})

	cursor, err := inv.store.Assets.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errInternal("asset query failed", err)
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, errInternal("failed to decode assets", err)
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

// AssetPage is the pagination envelope for HR asset listings.
type AssetPage struct {
	Items []models.Asset `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ListByHR returns the caller's own assets, newest first.
func (inv *Inventory) ListByHR(ctx context.Context, p models.Principal, email string, page, limit int) (AssetPage, error) {
	if email == "" {
		return AssetPage{}, errValidation("email is required")
	}
	if email != p.Email {
		return AssetPage{}, errForbidden("cannot list another hr's assets")
	}
	page, limit = normalizePage(page, limit)

	filter := bson.M{"hrEmail": email}

	total, err := inv.store.Assets.CountDocuments(ctx, filter)
	if err != nil {
		return AssetPage{}, errInternal("asset count failed", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "dateAdded", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := inv.store.Assets.Find(ctx, filter, opts)
	if err != nil {
		return AssetPage{}, errInternal("asset query failed", err)
	}
	defer cursor.Close(ctx)

	items := []models.Asset{}
	if err = cursor.All(ctx, &items); err != nil {
		return AssetPage{}, errInternal("failed to decode assets", err)
	}

	return AssetPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type UpdateAssetInput struct {
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"`
	ProductImage    string `json:"productImage"`
	ProductQuantity *int   `json:"productQuantity"`
}

// Update edits an asset's descriptive fields and, when ProductQuantity is
// set, resizes the pool. The new availability is oldAvailable + delta and
// the conditional filter rejects any resize that would shrink the pool
// below what is currently checked out.
func (inv *Inventory) Update(ctx context.Context, p models.Principal, id string, in UpdateAssetInput) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	var asset models.Asset
	err = inv.store.Assets.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return errNotFound("asset not found")
	}
	if err != nil {
		return errInternal("asset lookup failed", err)
	}
	if asset.HREmail != p.Email {
		return errForbidden("only the owning hr can update this asset")
	}

	set := bson.M{}
	if in.ProductName != "" {
		set["productName"] = in.ProductName
	}
	if in.ProductType != "" {
		set["productType"] = in.ProductType
	}
	if in.ProductImage != "" {
		set["productImage"] = in.ProductImage
	}

	filter := bson.M{"_id": oid, "hrEmail": p.Email}
	update := bson.M{}

	if in.ProductQuantity != nil {
		newQty := *in.ProductQuantity
		if newQty <= 0 {
			return errValidation("productQuantity must be a positive integer")
		}
		delta := newQty - asset.ProductQuantity
		// Guard against concurrent resizes and against shrinking below the
		// checked-out count: availableQuantity + delta must stay >= 0.
		filter["productQuantity"] = asset.ProductQuantity
		filter["availableQuantity"] = bson.M{"$gte": -delta}
		set["productQuantity"] = newQty
		update["$inc"] = bson.M{"availableQuantity": delta}
	}

	if len(set) == 0 && in.ProductQuantity == nil {
		return errValidation("no fields to update")
	}
	update["$set"] = set

	result, err := inv.store.Assets.UpdateOne(ctx, filter, update)
	if err != nil {
		return errInternal("failed to update asset", err)
	}
	if result.MatchedCount == 0 {
		if in.ProductQuantity != nil {
			return errConflict("cannot shrink pool below checked-out units")
		}
		return errNotFound("asset not found")
	}

	inv.audit.Record(ctx, p, p.Email, "asset_update", "asset", oid, bson.M{"set": set})
	return nil
}

func (inv *Inventory) Delete(ctx context.Context, p models.Principal, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	var asset models.Asset
	err = inv.store.Assets.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return errNotFound("asset not found")
	}
	if err != nil {
		return errInternal("asset lookup failed", err)
	}
	if asset.HREmail != p.Email {
		return errForbidden("only the owning hr can delete this asset")
	}

	if _, err := inv.store.Assets.DeleteOne(ctx, bson.M{"_id": oid, "hrEmail": p.Email}); err != nil {
		return errInternal("failed to delete asset", err)
	}

	inv.audit.Record(ctx, p, p.Email, "asset_delete", "asset", oid, bson.M{
		"productName": asset.ProductName,
	})
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
