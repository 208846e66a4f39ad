// billing/stripe.go
package billing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"assetverse/workflow"
)

// StripeGateway implements workflow.PaymentGateway over Stripe Checkout.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p workflow.CheckoutParams) (workflow.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.PackageName),
					},
					UnitAmount: stripe.Int64(p.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("hrEmail", p.HREmail)
	params.AddMetadata("packageName", p.PackageName)
	params.AddMetadata("employeeLimit", strconv.Itoa(p.EmployeeLimit))

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return workflow.CheckoutSession{}, fmt.Errorf("stripe session create: %w", err)
	}

	return workflow.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (workflow.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return workflow.CheckoutSession{}, fmt.Errorf("stripe session retrieve: %w", err)
	}

	limit, err := strconv.Atoi(session.Metadata["employeeLimit"])
	if err != nil {
		return workflow.CheckoutSession{}, fmt.Errorf("bad employeeLimit metadata %q", session.Metadata["employeeLimit"])
	}

	out := workflow.CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		Paid:          session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountCents:   session.AmountTotal,
		HREmail:       session.Metadata["hrEmail"],
		PackageName:   session.Metadata["packageName"],
		EmployeeLimit: limit,
	}
	if session.PaymentIntent != nil {
		out.TransactionID = session.PaymentIntent.ID
	}
	return out, nil
}
