// models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HRAccount is a tenant administrator owning a company's asset pool.
// CurrentEmployees counts active affiliations and is capped by PackageLimit
// before any new affiliation is created.
type HRAccount struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	CompanyName      string             `bson:"companyName" json:"companyName"`
	CompanyLogo      string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	DateOfBirth      string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	PasswordHash     string             `bson:"passwordHash" json:"-"`
	Role             Role               `bson:"role" json:"role"`
	PackageLimit     int                `bson:"packageLimit" json:"packageLimit"`
	CurrentEmployees int                `bson:"currentEmployees" json:"currentEmployees"`
	Subscription     string             `bson:"subscription" json:"subscription"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// Employee is a requester account. Company membership lives in the
// affiliations collection, not here.
type Employee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	DateOfBirth  string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
