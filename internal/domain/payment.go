package domain

import "strings"

// MockSecretPrefix marks a simulated payment intent. The backend issues
// client secrets shaped "pi_mock_secret_<orderID>" when no live processor is
// configured; anything else is a live processor secret.
const MockSecretPrefix = "pi_mock"

type IntentKind int

const (
	IntentReal IntentKind = iota
	IntentMock
)

// PaymentIntent is the decoded form of a client secret. The kind is derived
// from the secret's shape exactly once, here; call sites branch on Kind
// instead of re-inspecting the string.
type PaymentIntent struct {
	Kind         IntentKind
	ClientSecret string
}

func ParsePaymentIntent(clientSecret string) PaymentIntent {
	kind := IntentReal
	if strings.HasPrefix(clientSecret, MockSecretPrefix) {
		kind = IntentMock
	}
	return PaymentIntent{Kind: kind, ClientSecret: clientSecret}
}

func (p PaymentIntent) IsMock() bool {
	return p.Kind == IntentMock
}
