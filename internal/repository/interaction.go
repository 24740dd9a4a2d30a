package repository

import (
	"context"
	"time"

	"artspace/internal/cache"
	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// InteractionRepository handles likes, saves, and follows. Every toggle
// is a single transaction built on an insert racing through ON CONFLICT
// DO NOTHING against the pair's unique index, so concurrent toggles of
// the same pair cannot double-count.
type InteractionRepository interface {
	ToggleLike(ctx context.Context, userID, artworkID uint) (active bool, count int, err error)
	ToggleSave(ctx context.Context, userID, artworkID uint) (active bool, count int, err error)
	ToggleFollow(ctx context.Context, followerID, followeeID uint) (active bool, count int, err error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	FollowerCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
	ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
	ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) ToggleLike(ctx context.Context, userID, artworkID uint) (bool, int, error) {
	done := observability.TrackQuery("toggle", "likes")
	defer done()

	var active bool
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Exec(
			"INSERT INTO likes (user_id, artwork_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, artwork_id) DO NOTHING",
			userID, artworkID, time.Now(),
		)
		if ins.Error != nil {
			return ins.Error
		}

		if ins.RowsAffected > 0 {
			active = true
			if err := tx.Exec(
				"UPDATE artworks SET likes_count = likes_count + 1 WHERE id = ?", artworkID,
			).Error; err != nil {
				return err
			}
		} else {
			del := tx.Exec(
				"DELETE FROM likes WHERE user_id = ? AND artwork_id = ?", userID, artworkID,
			)
			if del.Error != nil {
				return del.Error
			}
			// Only decrement for the toggle that actually removed the row.
			if del.RowsAffected > 0 {
				if err := tx.Exec(
					"UPDATE artworks SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = ?", artworkID,
				).Error; err != nil {
					return err
				}
			}
		}

		return tx.Raw("SELECT likes_count FROM artworks WHERE id = ?", artworkID).Scan(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	cache.InvalidateArtwork(ctx, artworkID)
	return active, count, nil
}

// ToggleSave has no denormalized counter; saves are private so the
// count comes from a live COUNT inside the same transaction.
func (r *interactionRepository) ToggleSave(ctx context.Context, userID, artworkID uint) (bool, int, error) {
	done := observability.TrackQuery("toggle", "saves")
	defer done()

	var active bool
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Exec(
			"INSERT INTO saves (user_id, artwork_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, artwork_id) DO NOTHING",
			userID, artworkID, time.Now(),
		)
		if ins.Error != nil {
			return ins.Error
		}

		if ins.RowsAffected > 0 {
			active = true
		} else if err := tx.Exec(
			"DELETE FROM saves WHERE user_id = ? AND artwork_id = ?", userID, artworkID,
		).Error; err != nil {
			return err
		}

		return tx.Raw("SELECT COUNT(*) FROM saves WHERE artwork_id = ?", artworkID).Scan(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

// ToggleFollow returns the followee's resulting follower count.
// Follower counts are always computed live, never denormalized.
func (r *interactionRepository) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, int, error) {
	done := observability.TrackQuery("toggle", "follows")
	defer done()

	var active bool
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Exec(
			"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?) ON CONFLICT (follower_id, followee_id) DO NOTHING",
			followerID, followeeID, time.Now(),
		)
		if ins.Error != nil {
			return ins.Error
		}

		if ins.RowsAffected > 0 {
			active = true
		} else if err := tx.Exec(
			"DELETE FROM follows WHERE follower_id = ? AND followee_id = ?", followerID, followeeID,
		).Error; err != nil {
			return err
		}

		return tx.Raw("SELECT COUNT(*) FROM follows WHERE followee_id = ?", followeeID).Scan(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

func (r *interactionRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	done := observability.TrackQuery("select", "follows")
	defer done()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	done := observability.TrackQuery("count", "follows")
	defer done()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *interactionRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	done := observability.TrackQuery("count", "follows")
	defer done()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *interactionRepository) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	done := observability.TrackQuery("select", "follows")
	defer done()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *interactionRepository) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	done := observability.TrackQuery("select", "follows")
	defer done()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}
