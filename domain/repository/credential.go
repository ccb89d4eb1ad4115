package repository

import (
	"context"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

// ICredential is the exclusive gateway to the stored delegated credential.
// Nothing outside the token use case may read or write it.
type ICredential interface {
	// Get returns the stored credential for the provider, or (nil, nil)
	// when none exists.
	Get(ctx context.Context, provider string) (*model.Credential, error)
	// Replace deletes any prior credential for the provider and stores the
	// new one in a single transaction.
	Replace(ctx context.Context, cred *model.Credential) error
	// UpdateAccess persists a refreshed access token and expiry. The
	// refresh token is left untouched; the provider does not rotate it.
	UpdateAccess(ctx context.Context, provider, accessToken string, expiresAt time.Time) error
	// Clear purges the credential entirely.
	Clear(ctx context.Context, provider string) error
}
