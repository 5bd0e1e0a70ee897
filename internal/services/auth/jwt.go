// Package auth implements the authentication collaborator (spec §4.3):
// /auth/validate, /auth/refresh, /auth/verify, grounded on the teacher's
// internal/interface/http/middleware/jwt.go JWT authenticator, adapted to
// also issue tokens (the teacher's package only verifies).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

const MinSecretKeyLength = 32

var ErrSecretKeyTooShort = errors.New("jwt secret must be at least 32 bytes for HMAC-SHA256")

type JWTConfig struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	TokenTTL  time.Duration
}

// TokenService issues and verifies the bearer tokens every other service
// validates through platform/middleware.Authenticator.
type TokenService struct {
	cfg           JWTConfig
	parserOptions []jwt.ParserOption
}

func NewTokenService(cfg JWTConfig) (*TokenService, error) {
	if len(cfg.SecretKey) < MinSecretKeyLength {
		return nil, ErrSecretKeyTooShort
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &TokenService{cfg: cfg, parserOptions: opts}, nil
}

// Issue mints a signed access token for principal, valid for the
// configured TTL.
func (s *TokenService) Issue(principal ctxutil.Principal) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub":         principal.UserID,
		"username":    principal.Username,
		"roles":       principal.Roles,
		"permissions": principal.Permissions,
		"exp":         expiresAt.Unix(),
		"iat":         time.Now().Unix(),
	}
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}
	if s.cfg.Audience != "" {
		claims["aud"] = s.cfg.Audience
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.SecretKey)
	if err != nil {
		return "", time.Time{}, domainerr.Internal("sign token", err)
	}
	return signed, expiresAt, nil
}

// Verify implements platform/middleware.Authenticator: validates
// signature, expiry, issuer/audience, and maps claims onto a Principal.
func (s *TokenService) Verify(tokenString string) (ctxutil.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.cfg.SecretKey, nil
	}, s.parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ctxutil.Principal{}, domainerr.ExpiredToken("token expired")
		}
		return ctxutil.Principal{}, domainerr.InvalidToken("token invalid: " + err.Error())
	}
	if !token.Valid {
		return ctxutil.Principal{}, domainerr.InvalidToken("token invalid")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctxutil.Principal{}, domainerr.InvalidToken("unreadable claims")
	}
	return mapClaimsToPrincipal(mapClaims), nil
}

func mapClaimsToPrincipal(claims jwt.MapClaims) ctxutil.Principal {
	p := ctxutil.Principal{}
	if sub, ok := claims["sub"].(string); ok {
		p.UserID = sub
	}
	if username, ok := claims["username"].(string); ok {
		p.Username = username
	}
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			if role, ok := r.(string); ok {
				p.Roles = append(p.Roles, role)
				if role == "admin" {
					p.IsAdmin = true
				}
			}
		}
	}
	if perms, ok := claims["permissions"].([]interface{}); ok {
		for _, pm := range perms {
			if perm, ok := pm.(string); ok {
				p.Permissions = append(p.Permissions, perm)
			}
		}
	}
	return p
}
