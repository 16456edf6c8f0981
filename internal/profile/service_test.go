package profile

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mellow/internal/config"
	"mellow/internal/database"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "mellow.db"),
	}
	db, err := database.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, cfg.DatabaseDriver))
	return db
}

func newTestService(t *testing.T) Service {
	db := openTestDB(t)
	return NewService(NewRepository(db), NewContactRepository(db), zap.NewNop(), func() time.Time { return fixedNow })
}

func strPtr(s string) *string { return &s }

func TestGetProfile_Default(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.GetProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultReminderTime, p.ReminderTime)
	assert.False(t, p.OnboardingCompleted)
}

func TestUpdateProfile_PartialMerge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, Update{Name: strPtr("Ana"), DueDate: strPtr("2026-06-01")})
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, Update{ReminderTime: strPtr("07:45")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "2026-06-01", p.DueDate)
	assert.Equal(t, "07:45", p.ReminderTime)

	stored, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, "07:45", stored.ReminderTime)
}

func TestUpdateProfile_NormalizesRFC3339(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.UpdateProfile(context.Background(), Update{DueDate: strPtr("2026-06-01T00:00:00Z")})

	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", p.DueDate)
}

func TestUpdateProfile_Invalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, Update{ReminderTime: strPtr("25:99")})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = svc.UpdateProfile(ctx, Update{DueDate: strPtr("June first")})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestCompleteOnboarding(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CompleteOnboarding(ctx, Update{Name: strPtr("Ana")})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	p, err := svc.CompleteOnboarding(ctx, Update{LastPeriodDate: strPtr("2025-09-01")})
	require.NoError(t, err)
	assert.True(t, p.OnboardingCompleted)
	// 280 days after the last period
	assert.Equal(t, "2026-06-08", p.DueDate)
}

func TestTimeline(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tl, err := svc.Timeline(ctx)
	require.NoError(t, err)
	assert.Nil(t, tl.GestationalAge)

	// due 2026-06-01 puts conception at 2025-08-25; 188 days before fixedNow
	_, err = svc.UpdateProfile(ctx, Update{DueDate: strPtr("2026-06-01")})
	require.NoError(t, err)

	tl, err = svc.Timeline(ctx)
	require.NoError(t, err)
	require.NotNil(t, tl.GestationalAge)
	assert.Equal(t, 26, tl.GestationalAge.Week)
	assert.Equal(t, 6, tl.GestationalAge.Day)
	assert.Equal(t, 2, tl.Trimester)
}

func TestContacts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddContact(ctx, Contact{Name: "  ", Number: "555"})
	assert.ErrorIs(t, err, ErrInvalidContact)

	c, err := svc.AddContact(ctx, Contact{Name: " Sam ", Number: "555-0100", Relationship: "partner"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", c.Name)
	assert.NotEqual(t, uuid.Nil, c.ID)

	contacts, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, c.ID, contacts[0].ID)

	require.NoError(t, svc.RemoveContact(ctx, c.ID))
	assert.ErrorIs(t, svc.RemoveContact(ctx, c.ID), ErrNotFound)

	contacts, err = svc.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
