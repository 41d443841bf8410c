package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentIntent(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		mock   bool
	}{
		{"mock secret", "pi_mock_secret_42", true},
		{"bare mock prefix", "pi_mock", true},
		{"live secret", "pi_3OaXYZ_secret_abc123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ParsePaymentIntent(tt.secret)
			assert.Equal(t, tt.mock, intent.IsMock())
			assert.Equal(t, tt.secret, intent.ClientSecret)
		})
	}
}
