package subscribers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

func setupSubscribersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS email_subscribers (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  first_name TEXT,
  subscription_source TEXT NOT NULL DEFAULT 'website_newsletter',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS email_subscribers`).Error)
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db := setupSubscribersTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	svc, _ := setupService(t)

	subscriber, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "  Fan@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", subscriber.Email)
	assert.Equal(t, "website_newsletter", subscriber.SubscriptionSource)
}

func TestSubscribeDuplicateEmailConflicts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, SubscribeInput{Email: "fan@example.com"})
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = svc.Subscribe(ctx, SubscribeInput{Email: "FAN@example.com"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
	assert.Equal(t, "email already subscribed", appErr.Message())
}

func TestSubscribeBlankEmailRejected(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListAndDelete(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	older, err := svc.Subscribe(ctx, SubscribeInput{Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, SubscribeInput{Email: "b@example.com"})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, svc.Delete(ctx, older.ID))

	rows, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b@example.com", rows[0].Email)
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	svc, _ := setupService(t)
	require.NoError(t, svc.Delete(context.Background(), uuid.New()))
}
