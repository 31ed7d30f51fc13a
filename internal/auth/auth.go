package auth

import (
	"context"

	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/types"
)

// Claims are the identity fields extracted from a validated token.
type Claims struct {
	UserID   string
	TenantID string
	Email    string
}

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type AuthResponse struct {
	ProviderToken string `json:"provider_token"`
	AuthToken     string `json:"auth_token"`
	ID            string `json:"id"`
}

// Provider validates console users against the identity provider.
type Provider interface {
	GetProvider() types.AuthProvider
	Login(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// NewProvider returns the configured auth provider.
func NewProvider(cfg *config.Configuration) Provider {
	return NewSupabaseAuth(cfg)
}
