package gateway

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
	"landadmin.com/internal/config"
	"landadmin.com/internal/domain"
)

// GoogleVerifier implements domain.TokenVerifier using Google's ID token
// validation endpoint.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(cfg config.GoogleConfig) *GoogleVerifier {
	return &GoogleVerifier{clientID: cfg.ClientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.IdentityClaims, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("id token validation failed: %w", err)
	}

	claims := &domain.IdentityClaims{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		claims.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		claims.Picture = picture
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("id token carries no email claim")
	}
	return claims, nil
}
