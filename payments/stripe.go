package payments

import (
	"fmt"
	"log"
	"os"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// Currency used for all checkout sessions.
const Currency = "inr"

// DeliveryCharge is the flat delivery fee added as its own line item on
// online payments, in whole currency units.
const DeliveryCharge int64 = 8

// CheckoutItem is one line of a checkout session. UnitAmount is in the
// smallest currency unit (paise).
type CheckoutItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutClient abstracts the external payment processor so handlers can be
// tested without network calls. Verification is by client-supplied flag on
// the success/cancel redirect, not a server-side signature check.
type CheckoutClient interface {
	CreateCheckoutSession(items []CheckoutItem, successURL, cancelURL string) (string, error)
}

// StripeClient is the real implementation backed by Stripe Checkout.
type StripeClient struct{}

func Init() {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set, online payments will fail")
	}
	stripe.Key = key
}

func NewCheckoutClient() CheckoutClient {
	return &StripeClient{}
}

func (s *StripeClient) CreateCheckoutSession(items []CheckoutItem, successURL, cancelURL string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("checkout session requires at least one line item")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}

	return sess.URL, nil
}
