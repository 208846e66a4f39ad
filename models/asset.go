// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset is one product pool owned by an HR. AvailableQuantity tracks units
// not currently checked out and must stay within [0, ProductQuantity].
type Asset struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName       string             `bson:"productName" json:"productName"`
	ProductType       string             `bson:"productType" json:"productType"`
	ProductImage      string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	ProductQuantity   int                `bson:"productQuantity" json:"productQuantity"`
	AvailableQuantity int                `bson:"availableQuantity" json:"availableQuantity"`
	HREmail           string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName       string             `bson:"companyName" json:"companyName"`
	DateAdded         time.Time          `bson:"dateAdded" json:"dateAdded"`
}
