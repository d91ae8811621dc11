package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DrNytkenstien/secureauth/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Email       string    `gorm:"uniqueIndex;size:255"`
	CreatedAt   time.Time `gorm:"index"`
	LastLoginAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// Upsert implements domain.UserRepository
func (r *UserRepositoryImpl) Upsert(ctx context.Context, email string) (*domain.User, error) {
	now := time.Now()

	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err == nil {
		dbUser.LastLoginAt = now
		if err := r.db.WithContext(ctx).Save(&dbUser).Error; err != nil {
			return nil, err
		}
		return r.dbToDomain(&dbUser), nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	dbUser = DBUser{
		ID:          uuid.NewString(),
		Email:       email,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&dbUser).Error; err != nil {
		return nil, err
	}

	return r.dbToDomain(&dbUser), nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Count implements domain.UserRepository
func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:          dbUser.ID,
		Email:       dbUser.Email,
		CreatedAt:   dbUser.CreatedAt,
		LastLoginAt: dbUser.LastLoginAt,
	}
}

var _ domain.UserRepository = (*UserRepositoryImpl)(nil)
