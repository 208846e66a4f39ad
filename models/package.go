// models/package.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Package is a subscription tier an HR can purchase. EmployeeLimit becomes
// the HR's packageLimit after a verified payment.
type Package struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         int64              `bson:"price" json:"price"` // USD
	EmployeeLimit int                `bson:"employeeLimit" json:"employeeLimit"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
}
