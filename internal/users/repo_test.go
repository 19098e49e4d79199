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

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  account_type TEXT NOT NULL DEFAULT 'individual',
  company_name TEXT,
  siret_number TEXT,
  discount_rate_bps INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
	})

	return db
}

func seedUser(t *testing.T, repo *Repository, email string, accountType enums.AccountType) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Shopper",
		AccountType:  accountType,
		IsActive:     true,
	}
	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestUserRepository_CreateNormalizesEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	created := seedUser(t, repo, "  Marie@Example.COM ", enums.AccountTypeIndividual)

	assert.Equal(t, "marie@example.com", created.Email)
}

func TestUserRepository_FindByEmailIsCaseInsensitive(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedUser(t, repo, "pro@optique.fr", enums.AccountTypeBusiness)

	found, err := repo.FindByEmail(context.Background(), "PRO@Optique.FR")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, enums.AccountTypeBusiness, found.AccountType)
}

func TestUserRepository_FindByIDMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedUser(t, repo, "login@example.com", enums.AccountTypeIndividual)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(context.Background(), seeded.ID, at))

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
}
