package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luckyegg/storefront-backend/internal/users"
	"github.com/luckyegg/storefront-backend/pkg/config"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type stubSessions struct {
	registered []string
	revoked    []string
}

func (s *stubSessions) Register(_ context.Context, accessID, _ string) error {
	s.registered = append(s.registered, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT,
  last_name TEXT,
  role TEXT NOT NULL DEFAULT 'customer',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS users`).Error)
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func fastPassword() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "luckyegg-test",
		ExpirationMinutes: 10,
		SessionTTLMinutes: 60,
	}
}

func setupAuth(t *testing.T) (Service, *stubSessions) {
	t.Helper()

	sessions := &stubSessions{}
	svc, err := NewService(users.NewRepository(setupUsersTestDB(t)), sessions, testJWT(), fastPassword())
	require.NoError(t, err)
	return svc, sessions
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, sessions := setupAuth(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "owner@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, first.User.Role)
	assert.NotEmpty(t, first.AccessToken)

	second, err := svc.Register(ctx, RegisterInput{Email: "fan@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleCustomer, second.User.Role)

	assert.Len(t, sessions.registered, 2)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "fan@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "FAN@example.com", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	svc, _ := setupAuth(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "fan@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "fan@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: "Fan@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)

	_, err = svc.Login(ctx, LoginInput{Email: "fan@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	svc, _ := setupAuth(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := setupAuth(t)

	require.NoError(t, svc.Logout(context.Background(), "access-123"))
	assert.Equal(t, []string{"access-123"}, sessions.revoked)

	err := svc.Logout(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := setupAuth(t)

	_, err := svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
