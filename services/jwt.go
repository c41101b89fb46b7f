package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/alphabatem/common/context"

	"github.com/alpenrent/alpenrent_api/shared"
)

// JWTService verifies tokens issued by the hosted auth provider. The
// API never issues tokens itself; it only validates the shared-secret
// signature and reads the subject and role claims. Admin API clients
// may alternatively authenticate with the X-Admin-Key header, checked
// against a bcrypt hash from the environment.
type JWTService struct {
	context.DefaultService

	jwtSecretKey string
	adminKeyHash string
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.jwtSecretKey = os.Getenv("JWT_OAUTH_SECRET")
	svc.adminKeyHash = os.Getenv("ADMIN_KEY_HASH")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// VerifyToken validates signature and expiry and returns the subject
// and role carried by the token.
func (svc *JWTService) VerifyToken(jwtToken string) (userID, role string, err error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey)
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*CustomClaims)
		if ok && claims != nil {
			expTime, err := claims.GetExpirationTime()
			if err != nil {
				return "", "", fmt.Errorf("failed to get expiration time: %v", err)
			}
			if expTime.Unix() < time.Now().Unix() {
				return "", "", errors.New("token has expired")
			}

			userID = claims.UserID
			if userID == "" {
				userID = claims.Subject
			}
			role = claims.Role
			if role == "" {
				role = shared.RoleCustomer
			}
			return userID, role, nil
		}
	}

	return "", "", errors.New("unsupported JWT format")
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errors.New("token is missing")
	}
	return token, nil
}

// VerifyAdminKey checks a raw X-Admin-Key value against the configured
// bcrypt hash. Returns false when no hash is configured.
func (svc *JWTService) VerifyAdminKey(key string) bool {
	if svc.adminKeyHash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(svc.adminKeyHash), []byte(key)) == nil
}
