package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neuraops/dashboard/internal/dashboard/domain"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name   string
		creds  domain.Credentials
		expect func(t *testing.T, err error)
	}{
		{
			name:  "valid",
			creds: domain.Credentials{Username: "admin", Password: "secret"},
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "missing_password",
			creds: domain.Credentials{Username: "admin"},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			},
		},
		{
			name:  "missing_username",
			creds: domain.Credentials{Password: "secret"},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect(t, tt.creds.Validate())
		})
	}
}

func TestToken_IsEmpty(t *testing.T) {
	assert.True(t, domain.Token("").IsEmpty())
	assert.False(t, domain.Token("abc").IsEmpty())
}
