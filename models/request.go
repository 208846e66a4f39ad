// models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Request is an employee's ask for one unit of an asset. Asset name/type and
// requester identity are snapshotted at submit time and may go stale if the
// asset is edited later.
type Request struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID        primitive.ObjectID `bson:"assetId" json:"assetId"`
	AssetName      string             `bson:"assetName" json:"assetName"`
	AssetType      string             `bson:"assetType" json:"assetType"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	RequesterName  string             `bson:"requesterName" json:"requesterName"`
	HREmail        string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName    string             `bson:"companyName" json:"companyName"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	RequestDate    time.Time          `bson:"requestDate" json:"requestDate"`
	ApprovalDate   *time.Time         `bson:"approvalDate,omitempty" json:"approvalDate,omitempty"`
	RequestStatus  string             `bson:"requestStatus" json:"requestStatus"`
	ProcessedBy    string             `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
}
