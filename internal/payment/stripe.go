package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type stripeIntentAPI interface {
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

// StripeConfig configures the live processor. Intents is a test seam; when
// set, APIKey is not required.
type StripeConfig struct {
	APIKey   string
	Backends *stripe.Backends
	Intents  stripeIntentAPI
}

// StripeProcessor confirms live payment intents through Stripe.
type StripeProcessor struct {
	intents stripeIntentAPI
}

func NewStripeProcessor(cfg StripeConfig) (*StripeProcessor, error) {
	if cfg.Intents != nil {
		return &StripeProcessor{intents: cfg.Intents}, nil
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("stripe: api key is required")
	}
	sc := client.New(apiKey, cfg.Backends)
	return &StripeProcessor{intents: sc.PaymentIntents}, nil
}

func (p *StripeProcessor) Confirm(ctx context.Context, clientSecret string) (ProcessorResult, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx

	pi, err := p.intents.Confirm(intentIDFromSecret(clientSecret), params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return ProcessorResult{}, errors.New(stripeErr.Msg)
		}
		return ProcessorResult{}, err
	}
	return ProcessorResult{IntentID: pi.ID, Status: string(pi.Status)}, nil
}

// intentIDFromSecret derives the intent id from a client secret shaped
// "pi_..._secret_...".
func intentIDFromSecret(secret string) string {
	if i := strings.Index(secret, "_secret"); i > 0 {
		return secret[:i]
	}
	return secret
}
