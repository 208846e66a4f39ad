// models/affiliation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AffiliationActive   = "active"
	AffiliationInactive = "inactive"
)

// Affiliation links an employee to an HR's company. At most one active
// affiliation may exist per (employeeEmail, hrEmail) pair; removal flips the
// row to inactive rather than deleting it.
type Affiliation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeEmail   string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName    string             `bson:"employeeName" json:"employeeName"`
	HREmail         string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName     string             `bson:"companyName" json:"companyName"`
	CompanyLogo     string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	AffiliationDate time.Time          `bson:"affiliationDate" json:"affiliationDate"`
	Status          string             `bson:"status" json:"status"`
}
