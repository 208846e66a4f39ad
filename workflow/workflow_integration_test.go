package workflow

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetverse/models"
	"assetverse/store"
)

// These tests exercise the compound transitions against a real MongoDB.
// They need a replica set (transactions) and are skipped unless
// MONGO_TEST_URI is set, e.g.
//
//	MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0 go test ./workflow/
func newTestSet(t *testing.T) (*Set, *store.Store, func()) {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	dbName := fmt.Sprintf("assetverse_test_%d", time.Now().UnixNano())
	st := store.New(client, dbName)
	wf := New(st, nil, nil, "http://localhost:5173")

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(dbName).Drop(ctx)
		_ = client.Disconnect(ctx)
	}
	return wf, st, cleanup
}

func seedHR(t *testing.T, wf *Set, email string, limit int) models.Principal {
	t.Helper()
	hr, err := wf.Accounts.RegisterHR(context.Background(), RegisterHRInput{
		Name:        "Dana",
		Email:       email,
		Password:    "pw123456",
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	if limit != DefaultPackageLimit {
		_, err = wf.Accounts.store.HRs.UpdateOne(context.Background(),
			bson.M{"email": email}, bson.M{"$set": bson.M{"packageLimit": limit}})
		require.NoError(t, err)
	}
	return models.Principal{ID: hr.ID.Hex(), Email: hr.Email, Name: hr.Name, Role: models.RoleHR}
}

func seedEmployee(t *testing.T, wf *Set, email string) models.Principal {
	t.Helper()
	emp, err := wf.Accounts.RegisterEmployee(context.Background(), RegisterEmployeeInput{
		Name:     "Evan",
		Email:    email,
		Password: "pw123456",
	})
	require.NoError(t, err)
	return models.Principal{ID: emp.ID.Hex(), Email: emp.Email, Name: emp.Name, Role: models.RoleEmployee}
}

func getAsset(t *testing.T, st *store.Store, id string) models.Asset {
	t.Helper()
	oid, err := parseID(id)
	require.NoError(t, err)
	var asset models.Asset
	require.NoError(t, st.Assets.FindOne(context.Background(), bson.M{"_id": oid}).Decode(&asset))
	return asset
}

func getHR(t *testing.T, st *store.Store, email string) models.HRAccount {
	t.Helper()
	var hr models.HRAccount
	require.NoError(t, st.HRs.FindOne(context.Background(), bson.M{"email": email}).Decode(&hr))
	return hr
}

// Full lifecycle: two approvals for the same employee, one return, then an
// affiliation removal that cascades the remaining assignment back.
func TestRequestLifecycle(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Laptop", ProductType: "returnable", ProductQuantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, asset.AvailableQuantity)

	// First request and approval: new affiliation, quota consumed.
	req1, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "onboarding")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req1.RequestStatus)

	res1, err := wf.Requests.Approve(ctx, hr, req1.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res1.NewAffiliation)

	assert.Equal(t, 2, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	assert.Equal(t, 1, getHR(t, st, hr.Email).CurrentEmployees)

	// Second approval for the same pair: no new affiliation, no quota.
	req2, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
	require.NoError(t, err)
	res2, err := wf.Requests.Approve(ctx, hr, req2.ID.Hex())
	require.NoError(t, err)
	assert.False(t, res2.NewAffiliation)

	assert.Equal(t, 1, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	assert.Equal(t, 1, getHR(t, st, hr.Email).CurrentEmployees)

	// Employee returns the first assignment.
	require.NoError(t, wf.Assignments.Return(ctx, emp, res1.AssignmentID))
	assert.Equal(t, 2, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)

	// Returning it again is a conflict.
	err = wf.Assignments.Return(ctx, emp, res1.AssignmentID)
	assert.Equal(t, KindConflict, KindOf(err))

	// Removing the affiliation cascades the remaining assignment back.
	page, err := wf.Affiliations.ListActiveByHR(ctx, hr, hr.Email, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	removal, err := wf.Affiliations.Remove(ctx, hr, page.Items[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, removal.ReturnedAssets)

	assert.Equal(t, 3, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	assert.Equal(t, 0, getHR(t, st, hr.Email).CurrentEmployees)

	// No active affiliations remain.
	page, err = wf.Affiliations.ListActiveByHR(ctx, hr, hr.Email, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.Total)
}

func TestApproveTwiceIsConflict(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Monitor", ProductType: "returnable", ProductQuantity: 2,
	})
	require.NoError(t, err)

	req, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
	require.NoError(t, err)

	_, err = wf.Requests.Approve(ctx, hr, req.ID.Hex())
	require.NoError(t, err)

	_, err = wf.Requests.Approve(ctx, hr, req.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))

	// Second attempt had zero side effects.
	assert.Equal(t, 1, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	assert.Equal(t, 1, getHR(t, st, hr.Email).CurrentEmployees)
}

func TestApproveExhaustedInventory(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp1 := seedEmployee(t, wf, "one@x.com")
	emp2 := seedEmployee(t, wf, "two@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Keyboard", ProductType: "returnable", ProductQuantity: 1,
	})
	require.NoError(t, err)

	req1, err := wf.Requests.Submit(ctx, emp1, asset.ID.Hex(), "")
	require.NoError(t, err)
	req2, err := wf.Requests.Submit(ctx, emp2, asset.ID.Hex(), "")
	require.NoError(t, err)

	_, err = wf.Requests.Approve(ctx, hr, req1.ID.Hex())
	require.NoError(t, err)

	_, err = wf.Requests.Approve(ctx, hr, req2.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))

	// The failed approval left everything untouched.
	assert.Equal(t, 0, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	var req models.Request
	require.NoError(t, st.Requests.FindOne(ctx, bson.M{"_id": req2.ID}).Decode(&req))
	assert.Equal(t, models.RequestPending, req.RequestStatus)
}

func TestApproveQuotaExceeded(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", 1)
	emp1 := seedEmployee(t, wf, "one@x.com")
	emp2 := seedEmployee(t, wf, "two@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Chair", ProductType: "returnable", ProductQuantity: 5,
	})
	require.NoError(t, err)

	req1, err := wf.Requests.Submit(ctx, emp1, asset.ID.Hex(), "")
	require.NoError(t, err)
	_, err = wf.Requests.Approve(ctx, hr, req1.ID.Hex())
	require.NoError(t, err)

	// Quota full, second employee is rejected.
	req2, err := wf.Requests.Submit(ctx, emp2, asset.ID.Hex(), "")
	require.NoError(t, err)
	_, err = wf.Requests.Approve(ctx, hr, req2.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 4, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)

	// The already-affiliated employee approves fine without new quota.
	req3, err := wf.Requests.Submit(ctx, emp1, asset.ID.Hex(), "")
	require.NoError(t, err)
	res, err := wf.Requests.Approve(ctx, hr, req3.ID.Hex())
	require.NoError(t, err)
	assert.False(t, res.NewAffiliation)
	assert.Equal(t, 1, getHR(t, st, hr.Email).CurrentEmployees)
}

func TestRejectHasNoSideEffects(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Desk", ProductType: "non-returnable", ProductQuantity: 4,
	})
	require.NoError(t, err)

	req, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
	require.NoError(t, err)

	require.NoError(t, wf.Requests.Reject(ctx, hr, req.ID.Hex()))

	assert.Equal(t, 4, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
	assert.Equal(t, 0, getHR(t, st, hr.Email).CurrentEmployees)

	// Rejecting again reports not found, per the zero-rows contract.
	err = wf.Requests.Reject(ctx, hr, req.ID.Hex())
	assert.Equal(t, KindNotFound, KindOf(err))

	// And approval of a rejected request is a conflict.
	_, err = wf.Requests.Approve(ctx, hr, req.ID.Hex())
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestApproveOwnershipAndMissing(t *testing.T) {
	wf, _, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	other := seedHR(t, wf, "other@corp.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Phone", ProductType: "returnable", ProductQuantity: 2,
	})
	require.NoError(t, err)

	req, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
	require.NoError(t, err)

	_, err = wf.Requests.Approve(ctx, other, req.ID.Hex())
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = wf.Requests.Approve(ctx, hr, "64f000000000000000000009")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = wf.Requests.Approve(ctx, hr, "not-an-id")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAssetResizeGuard(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Tablet", ProductType: "returnable", ProductQuantity: 3,
	})
	require.NoError(t, err)

	// Check out two units.
	for i := 0; i < 2; i++ {
		req, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
		require.NoError(t, err)
		_, err = wf.Requests.Approve(ctx, hr, req.ID.Hex())
		require.NoError(t, err)
	}
	require.Equal(t, 1, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)

	// Shrinking below the two checked-out units is rejected.
	one := 1
	err = wf.Inventory.Update(ctx, hr, asset.ID.Hex(), UpdateAssetInput{ProductQuantity: &one})
	assert.Equal(t, KindConflict, KindOf(err))

	// Shrinking to exactly the checked-out count is fine: available hits 0.
	two := 2
	require.NoError(t, wf.Inventory.Update(ctx, hr, asset.ID.Hex(), UpdateAssetInput{ProductQuantity: &two}))
	got := getAsset(t, st, asset.ID.Hex())
	assert.Equal(t, 2, got.ProductQuantity)
	assert.Equal(t, 0, got.AvailableQuantity)

	// Growing adds straight to availability.
	five := 5
	require.NoError(t, wf.Inventory.Update(ctx, hr, asset.ID.Hex(), UpdateAssetInput{ProductQuantity: &five}))
	got = getAsset(t, st, asset.ID.Hex())
	assert.Equal(t, 5, got.ProductQuantity)
	assert.Equal(t, 3, got.AvailableQuantity)
}

func TestDirectAssignRequiresActiveAffiliation(t *testing.T) {
	wf, st, cleanup := newTestSet(t)
	defer cleanup()
	ctx := context.Background()

	hr := seedHR(t, wf, "hr@acme.com", DefaultPackageLimit)
	emp := seedEmployee(t, wf, "emp@x.com")

	asset, err := wf.Inventory.Create(ctx, hr, CreateAssetInput{
		ProductName: "Headset", ProductType: "returnable", ProductQuantity: 2,
	})
	require.NoError(t, err)

	_, err = wf.Assignments.DirectAssign(ctx, hr, DirectAssignInput{
		AssetID: asset.ID.Hex(), EmployeeEmail: emp.Email,
	})
	assert.Equal(t, KindConflict, KindOf(err))

	// Affiliate via an approval, then direct-assign works.
	req, err := wf.Requests.Submit(ctx, emp, asset.ID.Hex(), "")
	require.NoError(t, err)
	_, err = wf.Requests.Approve(ctx, hr, req.ID.Hex())
	require.NoError(t, err)

	assignment, err := wf.Assignments.DirectAssign(ctx, hr, DirectAssignInput{
		AssetID: asset.ID.Hex(), EmployeeEmail: emp.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentAssigned, assignment.Status)
	assert.Equal(t, 0, getAsset(t, st, asset.ID.Hex()).AvailableQuantity)
}
