package auth

import (
	"context"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// PrincipalResolver looks up the platform-level roles/permissions for a
// verified Telegram identity, delegating to the data collaborator. The
// profile/account record itself is out of the fabric's scope; only the
// resolved Principal matters here.
type PrincipalResolver interface {
	Resolve(ctx context.Context, telegramUserID, username string) (ctxutil.Principal, error)
}

// Service implements the auth collaborator's three operations.
type Service struct {
	tokens    *TokenService
	telegram  TelegramVerifier
	resolver  PrincipalResolver
	refreshes RefreshStore
}

func NewService(tokens *TokenService, telegram TelegramVerifier, resolver PrincipalResolver, refreshes RefreshStore) *Service {
	return &Service{tokens: tokens, telegram: telegram, resolver: resolver, refreshes: refreshes}
}

// RefreshStore persists the mapping from a refresh token to the
// principal it was issued for, so /auth/refresh can rotate access tokens
// without re-running Telegram verification.
type RefreshStore interface {
	Store(ctx context.Context, refreshToken string, principal ctxutil.Principal) error
	Consume(ctx context.Context, refreshToken string) (ctxutil.Principal, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Username     string
	ExpiresIn    int64
}

// Validate verifies Telegram initData, resolves the caller's principal,
// and issues a fresh token pair — the entry point a client calls once
// per Telegram WebApp launch.
func (s *Service) Validate(ctx context.Context, initData string) (TokenPair, error) {
	identity, err := s.telegram.Verify(ctx, initData)
	if err != nil {
		return TokenPair{}, domainerr.InvalidToken("telegram initData verification failed")
	}

	principal, err := s.resolver.Resolve(ctx, identity.TelegramUserID, identity.Username)
	if err != nil {
		return TokenPair{}, domainerr.External("resolve principal", err)
	}

	return s.issuePair(ctx, principal)
}

// Refresh rotates a refresh token for a new access token without
// re-verifying Telegram initData.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, domainerr.Validation("refresh_token is required")
	}
	principal, err := s.refreshes.Consume(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, domainerr.InvalidToken("refresh token invalid or already used")
	}
	return s.issuePair(ctx, principal)
}

// Verify checks whether a bearer access token is currently valid,
// returning the principal it resolves to. Other services call this
// collaborator endpoint only as a fallback; the common path validates
// the token locally via TokenService.Verify in the authentication layer.
func (s *Service) Verify(ctx context.Context, accessToken string) (ctxutil.Principal, error) {
	return s.tokens.Verify(accessToken)
}

func (s *Service) issuePair(ctx context.Context, principal ctxutil.Principal) (TokenPair, error) {
	access, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken := generateOpaqueToken()
	if err := s.refreshes.Store(ctx, refreshToken, principal); err != nil {
		return TokenPair{}, domainerr.Internal("store refresh token", err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		UserID:       principal.UserID,
		Username:     principal.Username,
		ExpiresIn:    int64(s.tokens.cfg.TokenTTL.Seconds()),
	}, nil
}
