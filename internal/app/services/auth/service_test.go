package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authsvc "luxestay/internal/app/services/auth"
	domainauth "luxestay/internal/domain/auth"
	domainuser "luxestay/internal/domain/user"
	"luxestay/internal/infra/security"
	"luxestay/internal/infra/storage/memory"
)

func newService(t *testing.T) (*authsvc.Service, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	return &authsvc.Service{
		Users:      users,
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{Cost: bcrypt.MinCost},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}, users
}

func TestRegisterCreatesGuestAccount(t *testing.T) {
	svc, users := newService(t)

	result, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "Guest@Example.com",
		Name:     "Guest User",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "guest@example.com", result.User.Email)
	assert.Equal(t, []domainuser.Role{domainuser.RoleGuest}, result.User.Roles)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)

	stored, err := users.ByEmail(context.Background(), "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)

	resolved, err := svc.ResolveToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, resolved.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "A", Password: "short"})
	assert.ErrorIs(t, err, authsvc.ErrPasswordTooShort)

	_, err = svc.Register(ctx, authsvc.RegisterParams{Name: "A", Password: "long enough"})
	assert.ErrorIs(t, err, domainuser.ErrEmailRequired)

	_, err = svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Password: "long enough"})
	assert.ErrorIs(t, err, domainuser.ErrNameRequired)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "First", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, authsvc.RegisterParams{Email: "A@B.com", Name: "Second", Password: "long enough"})
	assert.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestEnsureAdminProvisionsAccount(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "Ops@Example.com", "Ops", "long enough")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "ops@example.com", admin.Email)

	result, err := svc.Login(ctx, authsvc.LoginParams{Email: "ops@example.com", Password: "long enough"})
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin())

	// Calling again is a no-op.
	again, err := svc.EnsureAdmin(ctx, "ops@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = svc.EnsureAdmin(ctx, "", "", "")
	assert.ErrorIs(t, err, domainuser.ErrEmailRequired)

	_, err = svc.EnsureAdmin(ctx, "weak@example.com", "", "short")
	assert.ErrorIs(t, err, authsvc.ErrPasswordTooShort)
}

func TestEnsureAdminPromotesExistingUser(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "A", Password: "long enough"})
	require.NoError(t, err)
	assert.False(t, registered.User.IsAdmin())

	promoted, err := svc.EnsureAdmin(ctx, "A@B.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())
	assert.True(t, promoted.HasRole(domainuser.RoleGuest))

	// Promotion leaves the existing password alone.
	_, err = svc.Login(ctx, authsvc.LoginParams{Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, users := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, authsvc.LoginParams{Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEqual(t, registered.Token, result.Token)

	_, err = svc.Login(ctx, authsvc.LoginParams{Email: "a@b.com", Password: "wrong password"})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authsvc.LoginParams{Email: "nobody@b.com", Password: "long enough"})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)

	blocked, err := users.ByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	blocked.Blocked = true
	require.NoError(t, users.Save(ctx, blocked))
	_, err = svc.Login(ctx, authsvc.LoginParams{Email: "a@b.com", Password: "long enough"})
	assert.ErrorIs(t, err, authsvc.ErrUserBlocked)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))
	_, err = svc.ResolveToken(ctx, result.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestResolveTokenExpiry(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	start := time.Now()
	svc.Now = func() time.Time { return start }
	result, err := svc.Register(ctx, authsvc.RegisterParams{Email: "a@b.com", Name: "A", Password: "long enough"})
	require.NoError(t, err)

	svc.Now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = svc.ResolveToken(ctx, result.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}
