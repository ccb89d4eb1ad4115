package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

// CredentialRepository stores the single delegated-access credential per
// provider. All access goes through the token use case.
type CredentialRepository struct{ db *sql.DB }

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Get(ctx context.Context, provider string) (*model.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, provider, access_token, refresh_token, token_type, expires_at, scope, created_at, updated_at
         FROM credentials WHERE provider=$1`, provider)
	cred := &model.Credential{}
	var scope sql.NullString
	err := row.Scan(&cred.ID, &cred.Provider, &cred.AccessToken, &cred.RefreshToken,
		&cred.TokenType, &cred.ExpiresAt, &scope, &cred.CreatedAt, &cred.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	if scope.Valid {
		cred.Scope = scope.String
	}
	return cred, nil
}

// Replace swaps any stored credential for the provider with cred. A new
// OAuth handshake always starts from a clean row.
func (r *CredentialRepository) Replace(ctx context.Context, cred *model.Credential) error {
	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	if cred.TokenType == "" {
		cred.TokenType = "Bearer"
	}
	q := `INSERT INTO credentials (provider, access_token, refresh_token, token_type, expires_at, scope, created_at, updated_at)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
          ON CONFLICT (provider) DO UPDATE SET
            access_token=EXCLUDED.access_token,
            refresh_token=EXCLUDED.refresh_token,
            token_type=EXCLUDED.token_type,
            expires_at=EXCLUDED.expires_at,
            scope=EXCLUDED.scope,
            updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, cred.Provider, cred.AccessToken, cred.RefreshToken,
		cred.TokenType, cred.ExpiresAt, cred.Scope, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("replace credential: %w", err)
	}
	return nil
}

// UpdateAccess persists a refreshed access token. The refresh token column
// is untouched; Google does not rotate it on refresh.
func (r *CredentialRepository) UpdateAccess(ctx context.Context, provider, accessToken string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE credentials SET access_token=$1, expires_at=$2, updated_at=$3 WHERE provider=$4`,
		accessToken, expiresAt, time.Now().UTC(), provider)
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Clear(ctx context.Context, provider string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE provider=$1`, provider)
	if err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
