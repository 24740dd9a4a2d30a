package service

import (
	"context"

	"artspace/internal/models"
	"artspace/internal/repository"
)

// TrendingTagLimit is the size of the trending tags strip.
const TrendingTagLimit = 20

// TagService serves the trending tags strip.
type TagService struct {
	tags repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Trending returns the most used tags with their usage counts.
func (s *TagService) Trending(ctx context.Context) ([]models.TagCount, error) {
	tags, err := s.tags.Trending(ctx, TrendingTagLimit)
	if err != nil {
		return nil, models.NewInternalError("failed to load trending tags", err)
	}
	return tags, nil
}
