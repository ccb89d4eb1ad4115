package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// expiryBuffer is how long before expiry a token is considered stale. A
// token with less than this remaining gets refreshed proactively so a
// downstream API call never races expiry mid-flight.
const expiryBuffer = 5 * time.Minute

// IOAuthProvider abstracts the Google OAuth endpoints so the token
// lifecycle can be tested without the network.
type IOAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// GoogleOAuthProvider is the real provider backed by an oauth2.Config.
type GoogleOAuthProvider struct {
	config *oauth2.Config
}

func NewGoogleOAuthProvider(config *oauth2.Config) *GoogleOAuthProvider {
	return &GoogleOAuthProvider{config: config}
}

func (p *GoogleOAuthProvider) AuthCodeURL(state string) string {
	// prompt=consent forces Google to re-issue a refresh token even when
	// the user already granted access once.
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (p *GoogleOAuthProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

func (p *GoogleOAuthProvider) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return source.Token()
}

type ITokenUsecase interface {
	GetValidAccessToken(ctx context.Context) (string, error)
	AuthCodeURL(state string) string
	HandleCallback(ctx context.Context, code string) error
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (*dto.AuthStatusResponse, error)
}

type tokenUsecase struct {
	credentialRepo repository.ICredential
	provider       IOAuthProvider
	group          singleflight.Group
	now            func() time.Time
}

func NewTokenUsecase(credentialRepo repository.ICredential, provider IOAuthProvider) ITokenUsecase {
	return &tokenUsecase{
		credentialRepo: credentialRepo,
		provider:       provider,
		now:            time.Now,
	}
}

// GetValidAccessToken returns an access token with at least the expiry
// buffer remaining, refreshing through the provider when needed.
// Concurrent callers share a single refresh; a revoked grant purges the
// stored credential so later calls fail fast until the channel is
// reconnected.
func (u *tokenUsecase) GetValidAccessToken(ctx context.Context) (string, error) {
	cred, err := u.credentialRepo.Get(ctx, model.ProviderYouTube)
	if err != nil {
		return "", apperror.Wrap(apperror.KindTransient, "load credential", err)
	}
	if cred == nil {
		return "", apperror.New(apperror.KindNoCredential, "YouTube account is not connected")
	}
	if !cred.Usable() {
		// A credential without a refresh token can never recover on its
		// own, so treat it the same as a revoked grant.
		if clearErr := u.credentialRepo.Clear(ctx, model.ProviderYouTube); clearErr != nil {
			logger.GetLogger().Error(clearErr)
		}
		return "", apperror.New(apperror.KindReauthRequired, "stored credential has no refresh token, reconnect the YouTube account")
	}
	if cred.FreshFor(expiryBuffer, u.now()) {
		return cred.AccessToken, nil
	}

	token, err, _ := u.group.Do(model.ProviderYouTube, func() (interface{}, error) {
		return u.refresh(ctx, cred.RefreshToken)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (u *tokenUsecase) refresh(ctx context.Context, refreshToken string) (string, error) {
	fresh, err := u.provider.Refresh(ctx, refreshToken)
	if err != nil {
		if isInvalidGrant(err) {
			logger.GetLogger().Warn("refresh token revoked, clearing stored credential")
			if clearErr := u.credentialRepo.Clear(ctx, model.ProviderYouTube); clearErr != nil {
				logger.GetLogger().Error(clearErr)
			}
			return "", apperror.Wrap(apperror.KindReauthRequired, "YouTube access was revoked, reconnect the account", err)
		}
		return "", apperror.Wrap(apperror.KindTransient, "token refresh failed", err)
	}

	if err := u.credentialRepo.UpdateAccess(ctx, model.ProviderYouTube, fresh.AccessToken, fresh.Expiry); err != nil {
		// The refreshed token is still valid for this call even if we
		// could not persist it.
		logger.GetLogger().Error(err)
	}
	return fresh.AccessToken, nil
}

// isInvalidGrant reports whether the refresh failed because the grant
// itself is gone (user revoked access or Google expired the token),
// rather than a transient transport or server problem.
func isInvalidGrant(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return false
	}
	return retrieveErr.ErrorCode == "invalid_grant"
}

func (u *tokenUsecase) AuthCodeURL(state string) string {
	return u.provider.AuthCodeURL(state)
}

// HandleCallback exchanges the consent code and stores the resulting
// credential, replacing whatever was there before.
func (u *tokenUsecase) HandleCallback(ctx context.Context, code string) error {
	token, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return apperror.Wrap(apperror.KindAuthRequired, "authorization code exchange failed", err)
	}
	if token.RefreshToken == "" {
		return apperror.New(apperror.KindAuthRequired, "Google did not return a refresh token, remove the app from your Google account and reconnect")
	}

	cred := &model.Credential{
		Provider:     model.ProviderYouTube,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		cred.Scope = scope
	}
	if err := u.credentialRepo.Replace(ctx, cred); err != nil {
		return apperror.Wrap(apperror.KindTransient, "store credential", err)
	}
	logger.GetLogger().Info("YouTube account connected")
	return nil
}

func (u *tokenUsecase) Disconnect(ctx context.Context) error {
	if err := u.credentialRepo.Clear(ctx, model.ProviderYouTube); err != nil {
		return apperror.Wrap(apperror.KindTransient, "clear credential", err)
	}
	return nil
}

func (u *tokenUsecase) Status(ctx context.Context) (*dto.AuthStatusResponse, error) {
	cred, err := u.credentialRepo.Get(ctx, model.ProviderYouTube)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load credential", err)
	}
	if cred == nil {
		return &dto.AuthStatusResponse{
			Connected: false,
			Message:   "YouTube account is not connected",
		}, nil
	}
	resp := &dto.AuthStatusResponse{
		Connected:       true,
		HasRefreshToken: cred.RefreshToken != "",
		NeedsReconnect:  !cred.Usable(),
	}
	if !cred.ExpiresAt.IsZero() {
		expires := cred.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp, nil
}
