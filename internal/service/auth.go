package service

import (
	"time"

	"control-asistencia/internal/clock"
	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// AuthService issues bearer tokens for the reporting surface. Kiosks stay
// anonymous; only admins log in.
type AuthService struct {
	adminRepo repository.AdminUserRepository
	secret    []byte
	clock     clock.Clock
	logger    *logrus.Logger
}

func NewAuthService(adminRepo repository.AdminUserRepository, secret string, clk clock.Clock) *AuthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AuthService{
		adminRepo: adminRepo,
		secret:    []byte(secret),
		clock:     clk,
		logger:    logger,
	}
}

// SeedAdmin creates or refreshes the bootstrap admin from the environment.
// An empty password leaves the stored user untouched.
func (s *AuthService) SeedAdmin(username, password string) error {
	if username == "" || password == "" {
		s.logger.Info("Admin bootstrap skipped, no credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.adminRepo.Upsert(&models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("Admin user ready")

	return nil
}

// Login checks credentials and returns a signed token. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", internalError(err)
	}
	if user == nil {
		return "", validationError("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", validationError("invalid credentials")
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", internalError(err)
	}

	s.logger.WithField("username", username).Info("Admin logged in")

	return token, nil
}

// Verify parses a bearer token and returns the admin username.
func (s *AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))

	if err != nil || !token.Valid {
		return "", validationError("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", validationError("invalid or expired token")
	}

	return claims.Subject, nil
}
