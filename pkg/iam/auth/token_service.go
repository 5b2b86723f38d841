package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

// TokenClaims is the decoded payload of a validated access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Scopes    []string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email, scopes []string) (string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

// JWTTokenService implements TokenService with HS256 signed JWTs.
type JWTTokenService struct {
	secret   []byte
	issuer   string
	duration time.Duration
}

var _ TokenService = (*JWTTokenService)(nil)

func NewJWTTokenService(secret, issuer string, duration time.Duration) *JWTTokenService {
	return &JWTTokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		duration: duration,
	}
}

func (s *JWTTokenService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, scopes []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID.String(),
		"email":  email.String(),
		"scopes": scopes,
		"iss":    s.issuer,
		"iat":    now.Unix(),
		"exp":    now.Add(s.duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTTokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errx.Wrap(err, "invalid or expired token", errx.TypeAuthentication)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errx.Wrap(jwt.ErrTokenInvalidClaims, "invalid token claims", errx.TypeAuthentication)
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.UserID = kernel.NewUserID(sub)
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = kernel.Email(email)
	}
	if raw, ok := claims["scopes"].([]any); ok {
		for _, s := range raw {
			if scope, ok := s.(string); ok {
				out.Scopes = append(out.Scopes, scope)
			}
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
