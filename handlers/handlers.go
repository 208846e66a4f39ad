// handlers/handlers.go
//
// The handler layer owns transport concerns only: decoding input, pulling
// the principal off the context, calling the workflow and translating
// taxonomy errors to status codes. It depends on small interfaces so tests
// can substitute fakes for the Mongo-backed workflow components.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"assetverse/events"
	"assetverse/middleware"
	"assetverse/models"
	"assetverse/utils"
	"assetverse/workflow"
)

type AccountService interface {
	RegisterHR(ctx context.Context, in workflow.RegisterHRInput) (models.HRAccount, error)
	RegisterEmployee(ctx context.Context, in workflow.RegisterEmployeeInput) (models.Employee, error)
	Login(ctx context.Context, email, password string) (models.Principal, error)
	Lookup(ctx context.Context, email string) (interface{}, error)
}

type InventoryService interface {
	Create(ctx context.Context, p models.Principal, in workflow.CreateAssetInput) (models.Asset, error)
	Get(ctx context.Context, id string) (models.Asset, error)
	ListAll(ctx context.Context) ([]models.Asset, error)
	ListByHR(ctx context.Context, p models.Principal, email string, page, limit int) (workflow.AssetPage, error)
	Update(ctx context.Context, p models.Principal, id string, in workflow.UpdateAssetInput) error
	Delete(ctx context.Context, p models.Principal, id string) error
}

type RequestService interface {
	Submit(ctx context.Context, p models.Principal, assetID, note string) (models.Request, error)
	Approve(ctx context.Context, p models.Principal, requestID string) (workflow.ApprovalResult, error)
	Reject(ctx context.Context, p models.Principal, requestID string) error
	ListByHR(ctx context.Context, p models.Principal, email string) ([]models.Request, error)
}

type AffiliationService interface {
	ListActiveByHR(ctx context.Context, p models.Principal, email string, page, limit int) (workflow.AffiliationPage, error)
	Remove(ctx context.Context, p models.Principal, affiliationID string) (workflow.RemovalResult, error)
}

type AssignmentService interface {
	DirectAssign(ctx context.Context, p models.Principal, in workflow.DirectAssignInput) (models.AssignedAsset, error)
	Return(ctx context.Context, p models.Principal, id string) error
	ListByEmployee(ctx context.Context, p models.Principal, email string) ([]models.AssignedAsset, error)
}

type BillingService interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	CreateCheckoutSession(ctx context.Context, p models.Principal, packageID string) (string, error)
	VerifyPayment(ctx context.Context, p models.Principal, sessionID string) (workflow.VerifyResult, error)
}

type AuditService interface {
	List(ctx context.Context, p models.Principal, limit int) ([]models.AuditLog, error)
}

// Handler carries the workflow services and the token issuer.
type Handler struct {
	Accounts     AccountService
	Inventory    InventoryService
	Requests     RequestService
	Affiliations AffiliationService
	Assignments  AssignmentService
	Billing      BillingService
	Audit        AuditService
	Tokens       *utils.TokenIssuer
	Hub          *events.Hub
}

func New(wf *workflow.Set, tokens *utils.TokenIssuer, hub *events.Hub) *Handler {
	return &Handler{
		Accounts:     wf.Accounts,
		Inventory:    wf.Inventory,
		Requests:     wf.Requests,
		Affiliations: wf.Affiliations,
		Assignments:  wf.Assignments,
		Billing:      wf.Billing,
		Audit:        wf.Audit,
		Tokens:       tokens,
		Hub:          hub,
	}
}

const requestTimeout = 10 * time.Second

func opContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// principal returns the caller or writes a 401. Role filtering has already
// happened in the route middleware.
func principal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return models.Principal{}, false
	}
	return p, true
}

// respondError maps the workflow taxonomy onto HTTP status codes. Internal
// errors are logged and collapsed to a generic message.
func respondError(w http.ResponseWriter, err error) {
	switch workflow.KindOf(err) {
	case workflow.KindValidation:
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case workflow.KindAuth:
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case workflow.KindForbidden:
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case workflow.KindNotFound:
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case workflow.KindConflict:
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pageParams reads ?page= and ?limit= with the 1/10 defaults.
func pageParams(r *http.Request) (int, int) {
	page, limit := 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}
