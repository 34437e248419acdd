package token

import (
	"errors"
	"time"

	"review-api/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims represents JWT token claims.
type Claims struct {
	UserID    uuid.UUID       `json:"user_id"`
	Username  string          `json:"username"`
	Role      entity.UserRole `json:"role"`
	TokenType string          `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is what a successful confirmation-code exchange hands back.
type Pair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type JWTIssuer struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewJWTIssuer(secret string, accessExpiry, refreshExpiry time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

// Issue signs a refresh and an access token for user.
func (s *JWTIssuer) Issue(user *entity.User) (*Pair, error) {
	refresh, err := s.generateToken(user, TypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, err
	}
	access, err := s.generateToken(user, TypeAccess, s.accessExpiry)
	if err != nil {
		return nil, err
	}
	return &Pair{Refresh: refresh, Access: access}, nil
}

func (s *JWTIssuer) generateToken(user *entity.User, tokenType string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseAccess validates an access token; refresh tokens are rejected.
func (s *JWTIssuer) ParseAccess(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func (s *JWTIssuer) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
