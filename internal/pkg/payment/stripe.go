package payment

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/config"
)

// StripeClient confirms a PaymentIntent synchronously for the given
// payment method.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(conf *config.StripeConfig) *StripeClient {
	api := client.New(conf.SecretKey, nil)

	return &StripeClient{
		api: api,
	}
}

func (c *StripeClient) Charge(amountCents int64, currency, paymentMethodID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("c.api.PaymentIntents.New -> %w", err)
	}

	return intent.ID, nil
}
