package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/types"
)

// JwtCustomClaim carries the caller identity issued by the auth collaborator.
type JwtCustomClaim struct {
	UserID         string `json:"userId"`
	Role           string `json:"role"`
	BranchID       string `json:"branchId,omitempty"`
	IsRefreshToken bool   `json:"isRefreshToken,omitempty"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaim) Identity() types.Identity {
	return types.Identity{UserID: c.UserID, Role: c.Role, BranchID: c.BranchID}
}

type JWTService interface {
	GenerateTokens(identity types.Identity) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
}

type jwtService struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
	}
}

func (s *jwtService) GenerateTokens(identity types.Identity) (string, string, error) {
	now := time.Now()

	accessClaims := &JwtCustomClaim{
		UserID:   identity.UserID,
		Role:     identity.Role,
		BranchID: identity.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTokenExp)),
		},
	}

	refreshClaims := &JwtCustomClaim{
		UserID:         identity.UserID,
		Role:           identity.Role,
		BranchID:       identity.BranchID,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTokenExp)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims).SignedString([]byte(s.SecretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshClaims).SignedString([]byte(s.SecretKey))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	claims := &JwtCustomClaim{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(s.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
