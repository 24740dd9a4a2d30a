package repository

import (
	"context"
	"errors"

	"artspace/internal/cache"
	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// Feed sort modes.
const (
	SortTrending = "trending"
	SortPopular  = "popular"
	SortLatest   = "latest"
)

// orderExpr holds the one authoritative copy of each feed ordering.
// Ties on score break by recency.
var orderExpr = map[string]string{
	SortTrending: "artworks.likes_count * 2 + artworks.views_count + artworks.comments_count * 3 DESC, artworks.created_at DESC",
	SortPopular:  "artworks.likes_count + artworks.views_count DESC, artworks.created_at DESC",
	SortLatest:   "artworks.created_at DESC",
}

// ArtworkFilter describes a feed query. The same filter feeds both the
// page query and the total count so the two can never disagree.
type ArtworkFilter struct {
	Sort        string
	Tag         string
	Category    string
	Query       string
	AuthorID    uint
	FollowedBy  uint // restrict to authors the viewer follows, plus the viewer
	SavedBy     uint // restrict to artworks this user has saved
	IncludeNSFW bool
}

// ArtworkRepository handles artwork persistence and feed queries.
type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.Artwork, tagNames []string) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Artwork, error)
	List(ctx context.Context, filter ArtworkFilter, viewerID uint, offset, limit int) ([]models.Artwork, int64, error)
	Update(ctx context.Context, artwork *models.Artwork) error
	Delete(ctx context.Context, id uint) error
	RecordView(ctx context.Context, id uint) error
}

type artworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository creates a new artwork repository.
func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

// applyFilter builds the WHERE clause shared by the list and count
// queries. Tag filtering goes through an EXISTS subquery rather than a
// join so the count stays row-per-artwork.
func applyFilter(db *gorm.DB, f ArtworkFilter) *gorm.DB {
	q := db.Model(&models.Artwork{})

	if !f.IncludeNSFW {
		q = q.Where("artworks.nsfw = ?", false)
	}
	if f.AuthorID != 0 {
		q = q.Where("artworks.user_id = ?", f.AuthorID)
	}
	if f.Category != "" {
		q = q.Where("artworks.category = ?", f.Category)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("(artworks.title ILIKE ? OR artworks.description ILIKE ?)", like, like)
	}
	if f.Tag != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM artwork_tags at JOIN tags t ON t.id = at.tag_id WHERE at.artwork_id = artworks.id AND t.name = ?)",
			f.Tag,
		)
	}
	if f.FollowedBy != 0 {
		q = q.Where(
			"(artworks.user_id = ? OR EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.followee_id = artworks.user_id))",
			f.FollowedBy, f.FollowedBy,
		)
	}
	if f.SavedBy != 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM saves s WHERE s.user_id = ? AND s.artwork_id = artworks.id)",
			f.SavedBy,
		)
	}
	return q
}

// withViewerFlags adds the viewer_liked / viewer_saved projections. An
// anonymous viewer gets constant false without the subqueries.
func withViewerFlags(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID == 0 {
		return db.Select("artworks.*, FALSE AS viewer_liked, FALSE AS viewer_saved")
	}
	return db.Select(
		"artworks.*, "+
			"EXISTS (SELECT 1 FROM likes l WHERE l.user_id = ? AND l.artwork_id = artworks.id) AS viewer_liked, "+
			"EXISTS (SELECT 1 FROM saves s WHERE s.user_id = ? AND s.artwork_id = artworks.id) AS viewer_saved",
		viewerID, viewerID,
	)
}

func (r *artworkRepository) Create(ctx context.Context, artwork *models.Artwork, tagNames []string) error {
	done := observability.TrackQuery("insert", "artworks")
	defer done()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(artwork).Error; err != nil {
			return err
		}
		for _, name := range tagNames {
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Exec(
				"INSERT INTO artwork_tags (artwork_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				artwork.ID, tag.ID,
			).Error; err != nil {
				return err
			}
			artwork.Tags = append(artwork.Tags, tag)
		}
		cache.InvalidateTrendingTags(ctx)
		return nil
	})
}

// GetByID loads one artwork with author and tags. Anonymous reads go
// through the Redis cache; viewer-specific reads bypass it because the
// liked/saved flags differ per viewer.
func (r *artworkRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Artwork, error) {
	if viewerID == 0 {
		var artwork models.Artwork
		err := cache.Aside(ctx, cache.ArtworkKey(id), &artwork, cache.ArtworkTTL, func() error {
			return r.fetchByID(ctx, id, 0, &artwork)
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &artwork, nil
	}

	var artwork models.Artwork
	if err := r.fetchByID(ctx, id, viewerID, &artwork); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

func (r *artworkRepository) fetchByID(ctx context.Context, id, viewerID uint, dest *models.Artwork) error {
	done := observability.TrackQuery("select", "artworks")
	defer done()

	return withViewerFlags(r.db.WithContext(ctx).Model(&models.Artwork{}), viewerID).
		Preload("User").
		Preload("Tags").
		Where("artworks.id = ?", id).
		First(dest).Error
}

func (r *artworkRepository) List(ctx context.Context, filter ArtworkFilter, viewerID uint, offset, limit int) ([]models.Artwork, int64, error) {
	done := observability.TrackQuery("select", "artworks")
	defer done()

	order, ok := orderExpr[filter.Sort]
	if !ok {
		order = orderExpr[SortLatest]
	}

	var total int64
	if err := applyFilter(r.db.WithContext(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var artworks []models.Artwork
	err := withViewerFlags(applyFilter(r.db.WithContext(ctx), filter), viewerID).
		Preload("User").
		Preload("Tags").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&artworks).Error
	if err != nil {
		return nil, 0, err
	}
	return artworks, total, nil
}

func (r *artworkRepository) Update(ctx context.Context, artwork *models.Artwork) error {
	done := observability.TrackQuery("update", "artworks")
	defer done()

	if err := r.db.WithContext(ctx).Omit("Tags").Save(artwork).Error; err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, artwork.ID)
	return nil
}

// Delete removes an artwork and all rows hanging off it in one
// transaction.
func (r *artworkRepository) Delete(ctx context.Context, id uint) error {
	done := observability.TrackQuery("delete", "artworks")
	defer done()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artwork_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM artwork_tags WHERE artwork_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Artwork{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, id)
	cache.InvalidateTrendingTags(ctx)
	return nil
}

// RecordView bumps the view counter. Best-effort: callers log failures
// instead of failing the read that triggered it.
func (r *artworkRepository) RecordView(ctx context.Context, id uint) error {
	done := observability.TrackQuery("update", "artworks")
	defer done()

	return r.db.WithContext(ctx).
		Exec("UPDATE artworks SET views_count = views_count + 1 WHERE id = ?", id).Error
}
