package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

// MockIntentAPI implements stripeIntentAPI for testing
type MockIntentAPI struct {
	Intent *stripe.PaymentIntent
	Err    error

	GotID string
}

func (m *MockIntentAPI) Confirm(id string, _ *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	m.GotID = id
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Intent, nil
}

func TestIntentIDFromSecret(t *testing.T) {
	assert.Equal(t, "pi_3OaXYZ", intentIDFromSecret("pi_3OaXYZ_secret_abc123"))
	assert.Equal(t, "pi_3OaXYZ", intentIDFromSecret("pi_3OaXYZ"))
	assert.Equal(t, "", intentIDFromSecret(""))
}

func TestStripeProcessorConfirm(t *testing.T) {
	api := &MockIntentAPI{Intent: &stripe.PaymentIntent{
		ID:     "pi_3OaXYZ",
		Status: stripe.PaymentIntentStatusSucceeded,
	}}
	p, err := NewStripeProcessor(StripeConfig{Intents: api})
	require.NoError(t, err)

	result, err := p.Confirm(context.Background(), "pi_3OaXYZ_secret_abc123")
	require.NoError(t, err)
	assert.Equal(t, "pi_3OaXYZ", api.GotID)
	assert.Equal(t, "pi_3OaXYZ", result.IntentID)
	assert.Equal(t, StatusSucceeded, result.Status)
}

func TestStripeProcessorSurfacesStripeMessage(t *testing.T) {
	api := &MockIntentAPI{Err: &stripe.Error{Msg: "Your card has insufficient funds."}}
	p, err := NewStripeProcessor(StripeConfig{Intents: api})
	require.NoError(t, err)

	_, err = p.Confirm(context.Background(), "pi_3OaXYZ_secret_abc123")
	require.Error(t, err)
	assert.Equal(t, "Your card has insufficient funds.", err.Error())
}

func TestStripeProcessorPassesThroughUnknownErrors(t *testing.T) {
	api := &MockIntentAPI{Err: errors.New("connection reset")}
	p, err := NewStripeProcessor(StripeConfig{Intents: api})
	require.NoError(t, err)

	_, err = p.Confirm(context.Background(), "pi_3OaXYZ_secret_abc123")
	assert.EqualError(t, err, "connection reset")
}

func TestNewStripeProcessorRequiresKey(t *testing.T) {
	_, err := NewStripeProcessor(StripeConfig{})
	assert.Error(t, err)
}
