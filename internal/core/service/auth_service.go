package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

const (
	AuthCodeExpiration = 10 * time.Minute
	TokenExpiration    = time.Hour
	BcryptCost         = 10
	TokenIssuer        = "resultsapi"
)

type AuthService struct {
	userRepo     repository.UserRepository
	authCodeRepo repository.AuthCodeRepository
	jwtSecret    string
	jwtAlgorithm string
	logger       logging.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	authCodeRepo repository.AuthCodeRepository,
	jwtSecret string,
	jwtAlgorithm string,
	logger logging.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		authCodeRepo: authCodeRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		logger:       logger,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) checkCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthorizeUser authenticates a user and returns a single-use auth code
func (s *AuthService) AuthorizeUser(ctx context.Context, email, password string) (*domain.AuthCode, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	authCode := domain.NewAuthCode(user.ID, AuthCodeExpiration)
	if err := s.authCodeRepo.Create(ctx, authCode); err != nil {
		return nil, fmt.Errorf("failed to create auth code: %w", err)
	}

	// Clean up expired codes
	if err := s.authCodeRepo.DeleteExpired(ctx); err != nil {
		s.logger.Warn("failed to delete expired auth codes", "error", err)
	}

	return authCode, nil
}

// ExchangeAuthCode exchanges an auth code for a JWT token
func (s *AuthService) ExchangeAuthCode(ctx context.Context, code string) (string, error) {
	authCode, err := s.authCodeRepo.FindByCode(ctx, code)
	if err != nil {
		return "", NewServiceError(http.StatusBadRequest, "invalid auth code")
	}

	// Single use, expired or not
	if err := s.authCodeRepo.Delete(ctx, code); err != nil {
		return "", NewServiceError(http.StatusBadRequest, "invalid auth code")
	}

	if authCode.IsExpired() {
		return "", NewServiceError(http.StatusBadRequest, "auth code expired")
	}

	user, err := s.userRepo.FindByID(ctx, authCode.UserID)
	if err != nil {
		return "", NewServiceError(http.StatusBadRequest, "invalid auth code")
	}

	return s.generateJWT(user)
}

// AuthenticatePassword checks email and password and returns a JWT token
func (s *AuthService) AuthenticatePassword(ctx context.Context, email, password string) (string, error) {
	user, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.generateJWT(user)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.signingMethod().Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

func (s *AuthService) signingMethod() jwt.SigningMethod {
	switch s.jwtAlgorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// generateJWT generates a JWT token
func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// TokenClaims represents JWT claims; Subject holds the user id.
type TokenClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal returns the caller described by the claims.
func (c *TokenClaims) Principal() (domain.Principal, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Principal{}, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return domain.Principal{UserID: id, Email: c.Email, Roles: c.Roles}, nil
}
