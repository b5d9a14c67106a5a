package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/auth"
	"github.com/autoconnect-transport/service-admin/internal/domain"
	adminDomain "github.com/autoconnect-transport/service-admin/internal/domain/admin"
	"github.com/autoconnect-transport/service-admin/internal/otp"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*adminDomain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminDomain.Admin), args.Error(1)
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*adminDomain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminDomain.Admin), args.Error(1)
}

func newTestAuthService(admins *mockAdminRepo, store otp.Store, email *mockEmailChannel) *AuthService {
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(admins, store, email, tokens, 10*time.Minute, zap.NewNop())
}

func knownAdmin() *adminDomain.Admin {
	return &adminDomain.Admin{
		ID:    uuid.New(),
		Name:  "Alex Officer",
		Email: "alex@autoconnect.example",
		Role:  "superadmin",
	}
}

func TestRequestOTPSendsCode(t *testing.T) {
	admins := new(mockAdminRepo)
	email := new(mockEmailChannel)
	store := otp.NewMemoryStore()
	admin := knownAdmin()

	admins.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)

	var sentBody string
	email.On("Send", admin.Email, "Admin Login OTP", mock.Anything).
		Run(func(args mock.Arguments) { sentBody = args.Get(2).(string) }).
		Return(nil)

	svc := newTestAuthService(admins, store, email)
	require.NoError(t, svc.RequestOTP(context.Background(), admin.Email))

	code, ok, err := store.Get(context.Background(), admin.Email)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, code, 6)
	assert.Contains(t, sentBody, code)
	assert.Contains(t, sentBody, "expire in 10 minutes")
}

func TestRequestOTPUnknownEmail(t *testing.T) {
	admins := new(mockAdminRepo)
	email := new(mockEmailChannel)
	admins.On("FindByEmail", mock.Anything, "stranger@example.com").
		Return(nil, domain.NewNotFoundError("Admin", "stranger@example.com"))

	svc := newTestAuthService(admins, otp.NewMemoryStore(), email)
	err := svc.RequestOTP(context.Background(), "stranger@example.com")

	require.Error(t, err)
	var nfErr *domain.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
	email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTPIssuesSession(t *testing.T) {
	admins := new(mockAdminRepo)
	email := new(mockEmailChannel)
	store := otp.NewMemoryStore()
	admin := knownAdmin()
	ctx := context.Background()

	admins.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
	require.NoError(t, store.Set(ctx, admin.Email, "482913", 10*time.Minute))

	svc := newTestAuthService(admins, store, email)
	session, err := svc.VerifyOTP(ctx, admin.Email, "482913")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, admin.ID.String(), session.Admin.AdminID)
	assert.Equal(t, admin.Name, session.Admin.AdminName)
	assert.Equal(t, admin.Role, session.Admin.AdminRole)

	// The token round-trips through validation.
	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.AdminID)

	// The code is consumed.
	_, ok, err := store.Get(ctx, admin.Email)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	admins := new(mockAdminRepo)
	store := otp.NewMemoryStore()
	admin := knownAdmin()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, admin.Email, "482913", 10*time.Minute))

	svc := newTestAuthService(admins, store, new(mockEmailChannel))
	_, err := svc.VerifyOTP(ctx, admin.Email, "000000")

	require.Error(t, err)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	// A wrong guess does not consume the code.
	_, ok, getErr := store.Get(ctx, admin.Email)
	require.NoError(t, getErr)
	assert.True(t, ok)
}

func TestVerifyOTPWithoutRequest(t *testing.T) {
	svc := newTestAuthService(new(mockAdminRepo), otp.NewMemoryStore(), new(mockEmailChannel))
	_, err := svc.VerifyOTP(context.Background(), "alex@autoconnect.example", "123456")

	require.Error(t, err)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(new(mockAdminRepo), otp.NewMemoryStore(), new(mockEmailChannel))
	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
}
