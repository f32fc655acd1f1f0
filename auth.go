package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// hmacVerifier checks HS256 tokens signed with a shared secret.
type hmacVerifier struct {
	secret []byte
	issuer string
}

func NewHMACVerifier(secret, issuer string) TokenVerifier {
	return &hmacVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *hmacVerifier) Verify(_ context.Context, tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return Claims{}, err
	}

	return claimsFromToken(token)
}

// jwksVerifier checks RS256/ES256 tokens against the identity provider's JWKS.
type jwksVerifier struct {
	jwks   keyfunc.Keyfunc
	issuer string
}

// NewJWKSVerifier fetches the key set at jwksURL; keyfunc keeps it refreshed
// until ctx is cancelled.
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string) (TokenVerifier, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}
	return &jwksVerifier{jwks: jwks, issuer: issuer}, nil
}

func (v *jwksVerifier) Verify(_ context.Context, tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256", "ES256"})}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(tokenStr, v.jwks.Keyfunc, parserOpts...)
	if err != nil {
		return Claims{}, err
	}

	return claimsFromToken(token)
}

// NewVerifier picks JWKS verification when a JWKS URL is configured, then the
// shared secret. It returns nil when neither is set.
func NewVerifier(ctx context.Context, cfg Config) (TokenVerifier, error) {
	switch {
	case cfg.JWTJWKSURL != "":
		return NewJWKSVerifier(ctx, cfg.JWTJWKSURL, cfg.JWTIssuer)
	case cfg.JWTSecret != "":
		return NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	default:
		return nil, nil
	}
}

func claimsFromToken(token *jwt.Token) (Claims, error) {
	if !token.Valid {
		return Claims{}, errors.New("token is not valid")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims type")
	}

	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, errors.New("token missing subject claim")
	}

	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)

	return Claims{Subject: sub, Email: email, Name: name}, nil
}
