package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone_number TEXT,
  whatsapp TEXT,
  graduation_year INTEGER,
  instagram_handle TEXT,
  verification_status TEXT NOT NULL DEFAULT 'pending',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersTable).Error)

	return db
}

func TestRepository_CreateAndFind(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	email := uuid.NewString() + "@columbia.edu"
	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.VerificationStatusPending, created.VerificationStatus)

	byEmail, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)
}

func TestRepository_FindMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@columbia.edu")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpdateProfile(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        uuid.NewString() + "@columbia.edu",
		PasswordHash: "hash",
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)

	phone := "212-555-0142"
	gradYear := 2026
	require.NoError(t, repo.UpdateProfile(ctx, created.ID, UpdateProfileDTO{
		PhoneNumber:    &phone,
		GraduationYear: &gradYear,
	}))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	require.NotNil(t, updated.GraduationYear)
	assert.Equal(t, gradYear, *updated.GraduationYear)
	assert.Equal(t, "Jordan Lee", updated.FullName)
}

func TestRepository_UpdateProfileNoFields(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        uuid.NewString() + "@columbia.edu",
		PasswordHash: "hash",
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfile(ctx, created.ID, UpdateProfileDTO{}))

	unchanged, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", unchanged.FullName)
}

func TestRepository_UpdateVerificationStatus(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        uuid.NewString() + "@columbia.edu",
		PasswordHash: "hash",
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateVerificationStatus(ctx, created.ID, enums.VerificationStatusApproved))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VerificationStatusApproved, updated.VerificationStatus)
}

func TestRepository_UpdateLastLogin(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        uuid.NewString() + "@columbia.edu",
		PasswordHash: "hash",
		FullName:     "Jordan Lee",
	})
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID, at))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastLoginAt)
	assert.WithinDuration(t, at, *updated.LastLoginAt, time.Second)
}
