// workflow/audit.go
package workflow

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetverse/events"
	"assetverse/models"
	"assetverse/store"
)

// Auditor records mutations in the audit collection and pushes them to
// connected HR dashboards. Recording is best effort; a failed audit write
// never fails the operation it describes.
type Auditor struct {
	store *store.Store
	hub   *events.Hub
}

func (a *Auditor) Record(ctx context.Context, actor models.Principal, hrEmail, action, entityType string, entityID primitive.ObjectID, details bson.M) {
	entry := models.AuditLog{
		ID:         primitive.NewObjectID(),
		ActorEmail: actor.Email,
		ActorRole:  actor.Role,
		HREmail:    hrEmail,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := a.store.Audit.InsertOne(ctx, entry); err != nil {
		log.Printf("audit insert failed for %s: %v", action, err)
	}

	if a.hub != nil && hrEmail != "" {
		a.hub.Broadcast(hrEmail, events.Event{
			Type:       action,
			EntityType: entityType,
			EntityID:   entityID.Hex(),
			Actor:      actor.Email,
			Data:       details,
			Timestamp:  entry.CreatedAt,
		})
	}
}

// List returns the most recent audit entries for one HR's entities.
func (a *Auditor) List(ctx context.Context, p models.Principal, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.store.Audit.Find(ctx, bson.M{"hrEmail": p.Email}, opts)
	if err != nil {
		return nil, errInternal("audit query failed", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, errInternal("failed to decode audit entries", err)
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return entries, nil
}
