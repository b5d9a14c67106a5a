package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/auth"
	"github.com/autoconnect-transport/service-admin/internal/domain"
	adminDomain "github.com/autoconnect-transport/service-admin/internal/domain/admin"
	"github.com/autoconnect-transport/service-admin/internal/otp"
)

// AdminSessionDTO is returned after a successful OTP verification.
type AdminSessionDTO struct {
	Token string   `json:"token"`
	Admin AdminDTO `json:"user"`
}

// AdminDTO is the response representation of an admin account.
type AdminDTO struct {
	AdminID   string `json:"admin_id"`
	AdminName string `json:"admin_name"`
	AdminRole string `json:"admin_role"`
	Email     string `json:"email"`
}

// AuthService implements the OTP-based admin login flow: a code is emailed
// to a known admin address, then exchanged for a signed session token.
type AuthService struct {
	admins adminDomain.AdminRepository
	store  otp.Store
	email  EmailChannel
	tokens *auth.JWTManager
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	admins adminDomain.AdminRepository,
	store otp.Store,
	email EmailChannel,
	tokens *auth.JWTManager,
	ttl time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admins: admins,
		store:  store,
		email:  email,
		tokens: tokens,
		logger: logger,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RequestOTP generates a six-digit login code for a known admin email and
// sends it by email.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	if email == "" {
		return domain.NewValidationError("email is required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.store.Set(ctx, admin.Email, code, s.ttl); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf("Your Admin Login OTP is: %s. This OTP will expire in %d minutes.",
		code, int(s.ttl.Minutes()))
	if err := s.email.Send(admin.Email, "Admin Login OTP", body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.logger.Info("login OTP sent", zap.String("email", admin.Email))
	return nil
}

// VerifyOTP exchanges a valid code for a signed session token. The code is
// consumed on success.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*AdminSessionDTO, error) {
	if email == "" || code == "" {
		return nil, domain.NewValidationError("email and OTP are required")
	}

	stored, ok, err := s.store.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read OTP: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("no OTP found, please request a new one")
	}
	if stored != code {
		return nil, domain.NewValidationError("invalid OTP")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(admin.ID, admin.Name, admin.Role, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.store.Delete(ctx, email); err != nil {
		s.logger.Warn("failed to delete consumed OTP", zap.String("email", email), zap.Error(err))
	}

	return &AdminSessionDTO{
		Token: token,
		Admin: AdminDTO{
			AdminID:   admin.ID.String(),
			AdminName: admin.Name,
			AdminRole: admin.Role,
			Email:     admin.Email,
		},
	}, nil
}

// ValidateToken verifies a session token and returns the admin it belongs to.
func (s *AuthService) ValidateToken(tokenString string) (*auth.AdminClaims, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, domain.NewValidationError("invalid token")
	}
	return claims, nil
}

// generateOTP produces a uniformly random six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
