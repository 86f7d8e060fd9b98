package testutil

import (
	"context"
	"errors"

	"github.com/cufc/member-api/internal/shared/token"
)

// MockVerifier is a mock implementation of token.Verifier for testing
type MockVerifier struct {
	Subject    string
	VerifyFunc func(ctx context.Context, tokenString string) (*token.Claims, error)
}

// Ensure MockVerifier implements token.Verifier
var _ token.Verifier = (*MockVerifier)(nil)

// NewMockVerifier creates a verifier that accepts any token as the given
// subject. Set VerifyFunc for failure scenarios.
func NewMockVerifier(subject string) *MockVerifier {
	return &MockVerifier{Subject: subject}
}

func (m *MockVerifier) Verify(ctx context.Context, tokenString string) (*token.Claims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, tokenString)
	}
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	return &token.Claims{Subject: m.Subject}, nil
}
