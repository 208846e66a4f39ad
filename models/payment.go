// models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed subscription upgrade.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HREmail       string             `bson:"hrEmail" json:"hrEmail"`
	PackageName   string             `bson:"packageName" json:"packageName"`
	EmployeeLimit int                `bson:"employeeLimit" json:"employeeLimit"`
	Amount        int64              `bson:"amount" json:"amount"` // cents
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
	PaymentDate   time.Time          `bson:"paymentDate" json:"paymentDate"`
}
