package repository

import (
	"context"
	"errors"

	"artspace/internal/cache"
	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository handles comment persistence. Create and Delete keep
// the artwork's comments_count in step inside the same transaction.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArtwork(ctx context.Context, artworkID uint, offset, limit int) ([]models.Comment, int64, error)
	RecentByArtworkIDs(ctx context.Context, artworkIDs []uint, perArtwork int) (map[uint][]models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	done := observability.TrackQuery("insert", "comments")
	defer done()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE artworks SET comments_count = comments_count + 1 WHERE id = ?",
			comment.ArtworkID,
		).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, comment.ArtworkID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	done := observability.TrackQuery("select", "comments")
	defer done()

	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByArtwork(ctx context.Context, artworkID uint, offset, limit int) ([]models.Comment, int64, error) {
	done := observability.TrackQuery("select", "comments")
	defer done()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("artwork_id = ?", artworkID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("artwork_id = ?", artworkID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

// RecentByArtworkIDs loads the newest perArtwork comments for each of
// the given artworks in a single window query, for inline feed previews.
func (r *commentRepository) RecentByArtworkIDs(ctx context.Context, artworkIDs []uint, perArtwork int) (map[uint][]models.Comment, error) {
	out := make(map[uint][]models.Comment, len(artworkIDs))
	if len(artworkIDs) == 0 || perArtwork <= 0 {
		return out, nil
	}

	done := observability.TrackQuery("select", "comments")
	defer done()

	var comments []models.Comment
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, artwork_id, user_id, body, created_at FROM (
			SELECT c.*, ROW_NUMBER() OVER (PARTITION BY c.artwork_id ORDER BY c.created_at DESC, c.id DESC) AS rn
			FROM comments c
			WHERE c.artwork_id IN ?
		) ranked
		WHERE rn <= ?
		ORDER BY artwork_id, created_at DESC`,
		artworkIDs, perArtwork,
	).Scan(&comments).Error
	if err != nil {
		return nil, err
	}

	// Batch the author loads instead of preloading per row.
	authorIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool)
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}
	authors := make(map[uint]*models.User, len(authorIDs))
	if len(authorIDs) > 0 {
		var users []models.User
		if err := r.db.WithContext(ctx).Where("id IN ?", authorIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for i := range users {
			authors[users[i].ID] = &users[i]
		}
	}

	for i := range comments {
		comments[i].User = authors[comments[i].UserID]
		out[comments[i].ArtworkID] = append(out[comments[i].ArtworkID], comments[i])
	}
	return out, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	done := observability.TrackQuery("delete", "comments")
	defer done()

	var artworkID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		artworkID = comment.ArtworkID
		if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE artworks SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = ?",
			comment.ArtworkID,
		).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, artworkID)
	return nil
}
