package repository

import (
	"context"

	"artspace/internal/cache"
	"artspace/internal/models"
	"artspace/internal/observability"

	"gorm.io/gorm"
)

// TagRepository handles tag queries.
type TagRepository interface {
	Trending(ctx context.Context, limit int) ([]models.TagCount, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Trending returns the most-used tags, cached briefly since the list
// moves slowly and sits on every explore page.
func (r *tagRepository) Trending(ctx context.Context, limit int) ([]models.TagCount, error) {
	var tags []models.TagCount
	err := cache.Aside(ctx, cache.TrendingTagsKey, &tags, cache.TrendingTagsTTL, func() error {
		done := observability.TrackQuery("select", "tags")
		defer done()
		return r.db.WithContext(ctx).Raw(`
			SELECT t.name, COUNT(at.artwork_id) AS count
			FROM tags t
			JOIN artwork_tags at ON at.tag_id = t.id
			GROUP BY t.name
			ORDER BY count DESC, t.name ASC
			LIMIT ?`,
			limit,
		).Scan(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
