// models/audit_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records who did what to which entity.
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorEmail string             `bson:"actorEmail" json:"actorEmail"`
	ActorRole  Role               `bson:"actorRole" json:"actorRole"`
	HREmail    string             `bson:"hrEmail" json:"hrEmail"`
	Action     string             `bson:"action" json:"action"`
	EntityType string             `bson:"entityType" json:"entityType"`
	EntityID   primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Details    bson.M             `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
