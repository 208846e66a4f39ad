// workflow/accounts.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"assetverse/models"
	"assetverse/store"
	"assetverse/utils"
)

// New HR accounts start on the basic tier.
const (
	DefaultPackageLimit = 5
	DefaultSubscription = "basic"
)

// Accounts handles registration, login and account lookup for both roles.
type Accounts struct {
	store *store.Store
}

type RegisterHRInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (ac *Accounts) RegisterHR(ctx context.Context, in RegisterHRInput) (models.HRAccount, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.CompanyName == "" {
		return models.HRAccount{}, errValidation("name, email, password and companyName are required")
	}

	count, err := ac.store.HRs.CountDocuments(ctx, bson.M{"email": in.Email})
	if err != nil {
		return models.HRAccount{}, errInternal("hr lookup failed", err)
	}
	if count > 0 {
		return models.HRAccount{}, errConflict("account already exists")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.HRAccount{}, errInternal("failed to hash password", err)
	}

	hr := models.HRAccount{
		ID:               primitive.NewObjectID(),
		Name:             in.Name,
		Email:            in.Email,
		CompanyName:      in.CompanyName,
		CompanyLogo:      in.CompanyLogo,
		DateOfBirth:      in.DateOfBirth,
		PasswordHash:     hash,
		Role:             models.RoleHR,
		PackageLimit:     DefaultPackageLimit,
		CurrentEmployees: 0,
		Subscription:     DefaultSubscription,
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := ac.store.HRs.InsertOne(ctx, hr); err != nil {
		return models.HRAccount{}, errInternal("failed to create hr account", err)
	}
	return hr, nil
}

type RegisterEmployeeInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (ac *Accounts) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (models.Employee, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return models.Employee{}, errValidation("name, email and password are required")
	}

	count, err := ac.store.Employees.CountDocuments(ctx, bson.M{"email": in.Email})
	if err != nil {
		return models.Employee{}, errInternal("employee lookup failed", err)
	}
	if count > 0 {
		return models.Employee{}, errConflict("account already exists")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.Employee{}, errInternal("failed to hash password", err)
	}

	employee := models.Employee{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Email:        in.Email,
		DateOfBirth:  in.DateOfBirth,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := ac.store.Employees.InsertOne(ctx, employee); err != nil {
		return models.Employee{}, errInternal("failed to create employee account", err)
	}
	return employee, nil
}

// Login resolves the account by email in either collection and verifies the
// password, returning the principal to be signed into a token.
func (ac *Accounts) Login(ctx context.Context, email, password string) (models.Principal, error) {
	if email == "" || password == "" {
		return models.Principal{}, errValidation("email and password are required")
	}

	var hr models.HRAccount
	err := ac.store.HRs.FindOne(ctx, bson.M{"email": email}).Decode(&hr)
	if err == nil {
		if !utils.CheckPasswordHash(password, hr.PasswordHash) {
			return models.Principal{}, &Error{Kind: KindAuth, Msg: "invalid credentials"}
		}
		return models.Principal{ID: hr.ID.Hex(), Email: hr.Email, Name: hr.Name, Role: models.RoleHR}, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Principal{}, errInternal("hr lookup failed", err)
	}

	var employee models.Employee
	err = ac.store.Employees.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return models.Principal{}, &Error{Kind: KindAuth, Msg: "invalid credentials"}
	}
	if err != nil {
		return models.Principal{}, errInternal("employee lookup failed", err)
	}
	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		return models.Principal{}, &Error{Kind: KindAuth, Msg: "invalid credentials"}
	}
	return models.Principal{ID: employee.ID.Hex(), Email: employee.Email, Name: employee.Name, Role: models.RoleEmployee}, nil
}

// Lookup resolves an account by email across both collections. Password
// hashes never leave the models' json:"-" fields.
func (ac *Accounts) Lookup(ctx context.Context, email string) (interface{}, error) {
	if email == "" {
		return nil, errValidation("email is required")
	}

	var hr models.HRAccount
	err := ac.store.HRs.FindOne(ctx, bson.M{"email": email}).Decode(&hr)
	if err == nil {
		return hr, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, errInternal("hr lookup failed", err)
	}

	var employee models.Employee
	err = ac.store.Employees.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, errInternal("employee lookup failed", err)
	}
	return employee, nil
}
