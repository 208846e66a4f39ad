// workflow/workflow.go
//
// Package workflow holds the business rules of the asset lifecycle: the
// request state machine, the inventory ledger, the affiliation/quota ledger
// and the assignment ledger. Handlers validate transport concerns and call
// in here with a typed principal; everything below this line speaks in
// workflow errors, never HTTP.
package workflow

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetverse/events"
	"assetverse/store"
)

// Set bundles the workflow components over one store and one event hub.
type Set struct {
	Inventory    *Inventory
	Requests     *Requests
	Affiliations *Affiliations
	Assignments  *Assignments
	Accounts     *Accounts
	Billing      *Billing
	Audit        *Auditor
}

func New(st *store.Store, hub *events.Hub, gateway PaymentGateway, clientURL string) *Set {
	audit := &Auditor{store: st, hub: hub}
	return &Set{
		Inventory:    &Inventory{store: st, audit: audit},
		Requests:     &Requests{store: st, audit: audit},
		Affiliations: &Affiliations{store: st, audit: audit},
		Assignments:  &Assignments{store: st, audit: audit},
		Accounts:     &Accounts{store: st},
		Billing:      &Billing{store: st, gateway: gateway, clientURL: clientURL},
		Audit:        audit,
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errValidation("invalid id %q", id)
	}
	return oid, nil
}

// wrapTxnErr keeps taxonomy errors raised inside a transaction callback and
// folds everything else into an internal error.
func wrapTxnErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if we, ok := err.(*Error); ok {
		return we
	}
	return errInternal(msg, err)
}
