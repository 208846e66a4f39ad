// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"assetverse/handlers"
	"assetverse/middleware"
	"assetverse/models"
)

var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// Register wires the full HTTP surface. Public routes first, then the
// authenticated subrouter; per-route role guards wrap the handlers so the
// table reads as method + path + role.
func Register(r *mux.Router, h *handlers.Handler, auth *middleware.Authenticator) {
	hr := roleWrap(models.RoleHR)
	employee := roleWrap(models.RoleEmployee)
	anyRole := roleWrap(models.RoleHR, models.RoleEmployee)

	// ====================
	// PUBLIC ROUTES
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.HandleFunc("/auth/hr/register", h.RegisterHR).Methods(MethodsPostOnly...)
	r.HandleFunc("/auth/employee/register", h.RegisterEmployee).Methods(MethodsPostOnly...)
	r.HandleFunc("/auth/login", h.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/users/user", h.LookupUser).Methods(MethodsGetOnly...)

	// ====================
	// PROTECTED ROUTES
	// ====================
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(auth.Authenticate)

	// Assets
	protected.Handle("/assets/create", hr(h.CreateAsset)).Methods(MethodsPostOnly...)
	protected.Handle("/assets/get-all-assets", anyRole(h.ListAllAssets)).Methods(MethodsGetOnly...)
	protected.Handle("/assets/asset", anyRole(h.GetAsset)).Methods(MethodsGetOnly...)
	protected.Handle("/assets/hr", hr(h.ListHRAssets)).Methods(MethodsGetOnly...)
	protected.Handle("/assets/employee", employee(h.ListEmployeeAssets)).Methods(MethodsGetOnly...)
	protected.Handle("/assets/assign", hr(h.DirectAssign)).Methods(MethodsPostOnly...)
	protected.Handle("/assets/update", hr(h.UpdateAsset)).Methods(MethodsPatchOnly...)
	protected.Handle("/assets/delete", hr(h.DeleteAsset)).Methods(MethodsDeleteOnly...)

	// Requests
	protected.Handle("/requests/asset", employee(h.SubmitRequest)).Methods(MethodsPostOnly...)
	protected.Handle("/requests/{id}/accept", hr(h.ApproveRequest)).Methods(MethodsPatchOnly...)
	protected.Handle("/requests/{id}/reject", hr(h.RejectRequest)).Methods(MethodsPatchOnly...)
	protected.Handle("/requests/all-requests", hr(h.ListHRRequests)).Methods(MethodsGetOnly...)

	// Affiliations
	protected.Handle("/affiliations/affiliation", hr(h.ListAffiliations)).Methods(MethodsGetOnly...)
	protected.Handle("/affiliations/remove", hr(h.RemoveAffiliation)).Methods(MethodsPatchOnly...)

	// Assigned assets
	protected.Handle("/assignedAssets/return", employee(h.ReturnAsset)).Methods(MethodsPatchOnly...)
	protected.Handle("/assignedAssets/assign-assets", hr(h.DirectAssign)).Methods(MethodsPostOnly...)

	// Pricing and payments
	protected.Handle("/pricing/all-packages", anyRole(h.ListPackages)).Methods(MethodsGetOnly...)
	protected.Handle("/stripe/create-checkout-session", hr(h.CreateCheckoutSession)).Methods(MethodsPostOnly...)
	protected.Handle("/stripe/verify-payment", hr(h.VerifyPayment)).Methods(MethodsGetOnly...)

	// Audit and live events
	protected.Handle("/audit", hr(h.ListAuditLogs)).Methods(MethodsGetOnly...)
	protected.Handle("/ws", hr(h.ServeWS)).Methods("GET")
}

func roleWrap(roles ...models.Role) func(http.HandlerFunc) http.Handler {
	guard := middleware.RequireRole(roles...)
	return func(fn http.HandlerFunc) http.Handler {
		return guard(fn)
	}
}
