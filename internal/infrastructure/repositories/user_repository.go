package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). The code
// and reset-token columns are nullable pairs that are set and cleared
// together.
type DBUser struct {
	ID                     uint      `gorm:"primaryKey"`
	Name                   string    `gorm:"size:255"`
	Email                  string    `gorm:"index;size:255"`
	Phone                  string    `gorm:"index;size:32"`
	PasswordHash           string    `gorm:"column:password"`
	Role                   string    `gorm:"size:64"`
	AccountVerified        bool      `gorm:"index"`
	VerificationCode       *string   `gorm:"size:16"`
	VerificationCodeExpire *time.Time
	ResetPasswordToken     *string `gorm:"index;size:64"`
	ResetPasswordExpire    *time.Time
	CreatedAt              time.Time `gorm:"index"`
	UpdatedAt              time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindVerifiedByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND account_verified = ?", email, true).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindVerifiedByIdentity implements domain.UserRepository
func (r *UserRepositoryImpl) FindVerifiedByIdentity(ctx context.Context, email, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("(email = ? OR phone = ?) AND account_verified = ?", email, phone, true).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindPendingByIdentity implements domain.UserRepository. Results are ordered
// newest createdAt first; the head is the verification candidate.
func (r *UserRepositoryImpl) FindPendingByIdentity(ctx context.Context, email, phone string) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("(email = ? OR phone = ?) AND account_verified = ?", email, phone, false).
		Order("created_at DESC").
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// DeletePendingExcept implements domain.UserRepository
func (r *UserRepositoryImpl) DeletePendingExcept(ctx context.Context, keepID uint, email, phone string) error {
	return r.db.WithContext(ctx).
		Where("id <> ? AND (email = ? OR phone = ?) AND account_verified = ?", keepID, email, phone, false).
		Delete(&DBUser{}).Error
}

// Promote implements domain.UserRepository. The map form forces the NULL
// writes so the code fields clear in the same statement that flips the flag.
func (r *UserRepositoryImpl) Promote(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"account_verified":         true,
			"verification_code":        nil,
			"verification_code_expire": nil,
		}).Error
}

// SetVerificationCode implements domain.UserRepository
func (r *UserRepositoryImpl) SetVerificationCode(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_code":        code,
			"verification_code_expire": expiresAt,
		}).Error
}

// SetResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_password_token":  tokenHash,
			"reset_password_expire": expiresAt,
		}).Error
}

// ClearResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) ClearResetToken(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		}).Error
}

// FindByResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, now).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// CompletePasswordReset implements domain.UserRepository
func (r *UserRepositoryImpl) CompletePasswordReset(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":              passwordHash,
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		}).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		PasswordHash:    user.PasswordHash,
		Role:            user.Role,
		AccountVerified: user.AccountVerified,
	}
	if user.VerificationCode != "" {
		code := user.VerificationCode
		expire := user.VerificationCodeExpire
		dbUser.VerificationCode = &code
		dbUser.VerificationCodeExpire = &expire
	}
	if user.ResetPasswordToken != "" {
		token := user.ResetPasswordToken
		expire := user.ResetPasswordExpire
		dbUser.ResetPasswordToken = &token
		dbUser.ResetPasswordExpire = &expire
	}
	return dbUser
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:              dbUser.ID,
		Name:            dbUser.Name,
		Email:           dbUser.Email,
		Phone:           dbUser.Phone,
		PasswordHash:    dbUser.PasswordHash,
		Role:            dbUser.Role,
		AccountVerified: dbUser.AccountVerified,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
	if dbUser.VerificationCode != nil {
		user.VerificationCode = *dbUser.VerificationCode
	}
	if dbUser.VerificationCodeExpire != nil {
		user.VerificationCodeExpire = *dbUser.VerificationCodeExpire
	}
	if dbUser.ResetPasswordToken != nil {
		user.ResetPasswordToken = *dbUser.ResetPasswordToken
	}
	if dbUser.ResetPasswordExpire != nil {
		user.ResetPasswordExpire = *dbUser.ResetPasswordExpire
	}
	return user
}
