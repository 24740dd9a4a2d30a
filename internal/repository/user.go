// Package repository contains the data access layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artspace/internal/cache"
	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// UserRepository handles user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	CountArtworks(ctx context.Context, userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// ErrDuplicate marks unique-constraint violations so services can map
// them to friendly validation messages.
var ErrDuplicate = errors.New("duplicate value")

func mapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		return fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	}
	return err
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	done := observability.TrackQuery("insert", "users")
	defer done()
	return mapDuplicate(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID reads through the user cache.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		done := observability.TrackQuery("select", "users")
		defer done()
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	done := observability.TrackQuery("select", "users")
	defer done()

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	done := observability.TrackQuery("select", "users")
	defer done()

	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update persists the mutable profile columns. The password hash is
// excluded: cached reads drop it (json:"-"), so a full-row save from a
// cache hit would blank it.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	done := observability.TrackQuery("update", "users")
	defer done()

	err := r.db.WithContext(ctx).Model(user).
		Select("display_name", "bio", "age", "avatar_url", "is_admin", "updated_at").
		Updates(user).Error
	if err := mapDuplicate(err); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) CountArtworks(ctx context.Context, userID uint) (int64, error) {
	done := observability.TrackQuery("count", "artworks")
	defer done()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Artwork{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
