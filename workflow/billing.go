// workflow/billing.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"assetverse/models"
	"assetverse/store"
)

// CheckoutParams describes the session the gateway should create.
type CheckoutParams struct {
	PackageName   string
	AmountCents   int64
	HREmail       string
	EmployeeLimit int
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is what the gateway reports back about a session.
type CheckoutSession struct {
	ID            string
	URL           string
	Paid          bool
	AmountCents   int64
	TransactionID string
	HREmail       string
	PackageName   string
	EmployeeLimit int
}

// PaymentGateway is the external payment collaborator. The Stripe-backed
// implementation lives in the billing package; tests substitute a fake.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (CheckoutSession, error)
}

// Billing lists subscription packages and drives the upgrade flow.
type Billing struct {
	store     *store.Store
	gateway   PaymentGateway
	clientURL string
}

func (b *Billing) ListPackages(ctx context.Context) ([]models.Package, error) {
	cursor, err := b.store.Packages.Find(ctx, bson.M{})
	if err != nil {
		return nil, errInternal("package query failed", err)
	}
	defer cursor.Close(ctx)

	packages := []models.Package{}
	if err = cursor.All(ctx, &packages); err != nil {
		return nil, errInternal("failed to decode packages", err)
	}
	return packages, nil
}

// SeedPackages inserts the default tiers on a fresh database so the pricing
// endpoint and the upgrade flow work without manual setup.
func (b *Billing) SeedPackages(ctx context.Context) error {
	count, err := b.store.Packages.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("package count failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []interface{}{
		models.Package{ID: primitive.NewObjectID(), Name: "basic", Price: 5, EmployeeLimit: 5, Description: "Up to 5 employees"},
		models.Package{ID: primitive.NewObjectID(), Name: "standard", Price: 8, EmployeeLimit: 10, Description: "Up to 10 employees"},
		models.Package{ID: primitive.NewObjectID(), Name: "premium", Price: 15, EmployeeLimit: 20, Description: "Up to 20 employees"},
	}

	if _, err := b.store.Packages.InsertMany(ctx, defaults); err != nil {
		return fmt.Errorf("package seed failed: %w", err)
	}
	return nil
}

// CreateCheckoutSession builds a gateway session for the selected package
// and returns the redirect URL.
func (b *Billing) CreateCheckoutSession(ctx context.Context, p models.Principal, packageID string) (string, error) {
	oid, err := parseID(packageID)
	if err != nil {
		return "", err
	}

	var pkg models.Package
	err = b.store.Packages.FindOne(ctx, bson.M{"_id": oid}).Decode(&pkg)
	if err == mongo.ErrNoDocuments {
		return "", errNotFound("package not found")
	}
	if err != nil {
		return "", errInternal("package lookup failed", err)
	}

	session, err := b.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		PackageName:   pkg.Name,
		AmountCents:   pkg.Price * 100,
		HREmail:       p.Email,
		EmployeeLimit: pkg.EmployeeLimit,
		SuccessURL:    b.clientURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     b.clientURL + "/payment-cancel",
	})
	if err != nil {
		return "", errInternal("checkout session creation failed", err)
	}
	return session.URL, nil
}

// VerifyResult is returned to the client after a successful upgrade.
type VerifyResult struct {
	Subscription string `json:"subscription"`
	PackageLimit int    `json:"packageLimit"`
}

// VerifyPayment retrieves the session from the gateway and, when paid,
// upgrades the HR's subscription and records the payment.
func (b *Billing) VerifyPayment(ctx context.Context, p models.Principal, sessionID string) (VerifyResult, error) {
	if sessionID == "" {
		return VerifyResult{}, errValidation("session id is required")
	}

	session, err := b.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return VerifyResult{}, errInternal("payment verification failed", err)
	}
	if !session.Paid {
		return VerifyResult{}, errConflict("payment not completed")
	}
	if session.HREmail != p.Email {
		return VerifyResult{}, errForbidden("session belongs to another hr")
	}

	result, err := b.store.HRs.UpdateOne(ctx,
		bson.M{"email": session.HREmail},
		bson.M{"$set": bson.M{
			"subscription": session.PackageName,
			"packageLimit": session.EmployeeLimit,
		}},
	)
	if err != nil {
		return VerifyResult{}, errInternal("subscription update failed", err)
	}
	if result.MatchedCount == 0 {
		return VerifyResult{}, errNotFound("hr account not found")
	}

	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		HREmail:       session.HREmail,
		PackageName:   session.PackageName,
		EmployeeLimit: session.EmployeeLimit,
		Amount:        session.AmountCents,
		TransactionID: session.TransactionID,
		Status:        "completed",
		PaymentDate:   time.Now().UTC(),
	}
	if _, err := b.store.Payments.InsertOne(ctx, payment); err != nil {
		return VerifyResult{}, errInternal("payment record failed", err)
	}

	return VerifyResult{Subscription: session.PackageName, PackageLimit: session.EmployeeLimit}, nil
}
