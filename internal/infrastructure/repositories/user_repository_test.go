package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/accountsvc/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DBUser{}))
	return db
}

func seedPending(t *testing.T, repo domain.UserRepository, email, phone, code string, expiresAt, createdAt time.Time) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		Phone:        phone,
		PasswordHash: "hashed_password",
		Role:         "user",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NoError(t, repo.SetVerificationCode(context.Background(), user.ID, code, expiresAt))

	// Backdate created_at so ordering tests have distinct timestamps.
	impl := repo.(*UserRepositoryImpl)
	require.NoError(t, impl.db.Model(&DBUser{}).
		Where("id = ?", user.ID).
		Update("created_at", createdAt).Error)

	user.VerificationCode = code
	user.VerificationCodeExpire = expiresAt
	user.CreatedAt = createdAt
	return user
}

func TestUserRepositoryImpl_CreateAndFindByID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Name:         "Test User",
		Email:        "test@example.com",
		Phone:        "+911234567890",
		PasswordHash: "hashed_password",
		Role:         "user",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", found.Email)
	assert.Equal(t, "hashed_password", found.PasswordHash)
	assert.False(t, found.AccountVerified)
}

func TestUserRepositoryImpl_FindByID_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_FindVerifiedByEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	pending := &domain.User{
		Name: "Pending", Email: "same@example.com", Phone: "+911111111111",
		PasswordHash: "h", Role: "user",
	}
	require.NoError(t, repo.Create(ctx, pending))

	// A pending record with the same email must not satisfy a login lookup.
	_, err := repo.FindVerifiedByEmail(ctx, "same@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.Promote(ctx, pending.ID))

	found, err := repo.FindVerifiedByEmail(ctx, "same@example.com")
	require.NoError(t, err)
	assert.Equal(t, pending.ID, found.ID)
	assert.True(t, found.AccountVerified)
}

func TestUserRepositoryImpl_FindVerifiedByIdentity_MatchesEitherField(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Name: "Verified", Email: "holder@example.com", Phone: "+911234567890",
		PasswordHash: "h", Role: "user",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Promote(ctx, user.ID))

	// Same email, different phone.
	found, err := repo.FindVerifiedByIdentity(ctx, "holder@example.com", "+919999999999")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Same phone, different email.
	found, err = repo.FindVerifiedByIdentity(ctx, "other@example.com", "+911234567890")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Neither matches.
	_, err = repo.FindVerifiedByIdentity(ctx, "other@example.com", "+919999999999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_FindPendingByIdentity_NewestFirst(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	expiry := time.Now().Add(5 * time.Minute)
	oldest := seedPending(t, repo, "test@example.com", "+911234567890", "11111", expiry, base)
	middle := seedPending(t, repo, "test@example.com", "+911234567890", "22222", expiry, base.Add(time.Minute))
	newest := seedPending(t, repo, "test@example.com", "+911234567890", "33333", expiry, base.Add(2*time.Minute))

	pending, err := repo.FindPendingByIdentity(ctx, "test@example.com", "+911234567890")
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, newest.ID, pending[0].ID)
	assert.Equal(t, middle.ID, pending[1].ID)
	assert.Equal(t, oldest.ID, pending[2].ID)
	assert.Equal(t, "33333", pending[0].VerificationCode)
}

func TestUserRepositoryImpl_FindPendingByIdentity_ExcludesVerified(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	expiry := time.Now().Add(5 * time.Minute)
	user := seedPending(t, repo, "test@example.com", "+911234567890", "11111", expiry, time.Now())
	require.NoError(t, repo.Promote(ctx, user.ID))

	pending, err := repo.FindPendingByIdentity(ctx, "test@example.com", "+911234567890")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUserRepositoryImpl_DeletePendingExcept(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	expiry := time.Now().Add(5 * time.Minute)
	seedPending(t, repo, "test@example.com", "+911234567890", "11111", expiry, base)
	seedPending(t, repo, "test@example.com", "+911234567890", "22222", expiry, base.Add(time.Minute))
	keep := seedPending(t, repo, "test@example.com", "+911234567890", "33333", expiry, base.Add(2*time.Minute))

	// Unrelated identity must survive the prune.
	other := seedPending(t, repo, "other@example.com", "+919999999999", "44444", expiry, base)

	require.NoError(t, repo.DeletePendingExcept(ctx, keep.ID, "test@example.com", "+911234567890"))

	pending, err := repo.FindPendingByIdentity(ctx, "test@example.com", "+911234567890")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, keep.ID, pending[0].ID)

	otherPending, err := repo.FindPendingByIdentity(ctx, "other@example.com", "+919999999999")
	require.NoError(t, err)
	require.Len(t, otherPending, 1)
	assert.Equal(t, other.ID, otherPending[0].ID)
}

func TestUserRepositoryImpl_Promote_ClearsCodeFields(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	expiry := time.Now().Add(5 * time.Minute)
	user := seedPending(t, repo, "test@example.com", "+911234567890", "12345", expiry, time.Now())

	require.NoError(t, repo.Promote(ctx, user.ID))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found.AccountVerified)
	assert.Empty(t, found.VerificationCode)
	assert.True(t, found.VerificationCodeExpire.IsZero())
}

func TestUserRepositoryImpl_ResetTokenLifecycle(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Name: "Test User", Email: "test@example.com", Phone: "+911234567890",
		PasswordHash: "old_hash", Role: "user",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Promote(ctx, user.ID))

	hash := "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	require.NoError(t, repo.SetResetToken(ctx, user.ID, hash, time.Now().Add(15*time.Minute)))

	// Valid lookup within the expiry window.
	found, err := repo.FindByResetToken(ctx, hash, time.Now())
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// Wrong hash.
	_, err = repo.FindByResetToken(ctx, "0000", time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Past the expiry window.
	_, err = repo.FindByResetToken(ctx, hash, time.Now().Add(20*time.Minute))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_ClearResetToken(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Name: "Test User", Email: "test@example.com", Phone: "+911234567890",
		PasswordHash: "h", Role: "user",
	}
	require.NoError(t, repo.Create(ctx, user))

	hash := "cafebabe"
	require.NoError(t, repo.SetResetToken(ctx, user.ID, hash, time.Now().Add(15*time.Minute)))
	require.NoError(t, repo.ClearResetToken(ctx, user.ID))

	_, err := repo.FindByResetToken(ctx, hash, time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, found.ResetPasswordToken)
}

func TestUserRepositoryImpl_CompletePasswordReset(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Name: "Test User", Email: "test@example.com", Phone: "+911234567890",
		PasswordHash: "old_hash", Role: "user",
	}
	require.NoError(t, repo.Create(ctx, user))

	hash := "feedface"
	require.NoError(t, repo.SetResetToken(ctx, user.ID, hash, time.Now().Add(15*time.Minute)))
	require.NoError(t, repo.CompletePasswordReset(ctx, user.ID, "new_hash"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new_hash", found.PasswordHash)
	assert.Empty(t, found.ResetPasswordToken)
	assert.True(t, found.ResetPasswordExpire.IsZero())

	// The consumed token must be unusable.
	_, err = repo.FindByResetToken(ctx, hash, time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
