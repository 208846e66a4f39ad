// store/store.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the collection handles. It is constructed once at startup and
// injected into the workflow components.
type Store struct {
	client *mongo.Client

	Assets         *mongo.Collection
	Requests       *mongo.Collection
	Affiliations   *mongo.Collection
	AssignedAssets *mongo.Collection
	HRs            *mongo.Collection
	Employees      *mongo.Collection
	Packages       *mongo.Collection
	Payments       *mongo.Collection
	Audit          *mongo.Collection
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:         client,
		Assets:         db.Collection("assets"),
		Requests:       db.Collection("requests"),
		Affiliations:   db.Collection("affiliations"),
		AssignedAssets: db.Collection("assignedAssets"),
		HRs:            db.Collection("hrs"),
		Employees:      db.Collection("employees"),
		Packages:       db.Collection("packages"),
		Payments:       db.Collection("payments"),
		Audit:          db.Collection("audit"),
	}
}

// WithTransaction runs fn inside a MongoDB session transaction. The compound
// approval and removal effects go through here so partial application is
// rolled back rather than left behind.
func (s *Store) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}
