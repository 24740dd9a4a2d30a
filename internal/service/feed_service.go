// Package service contains the business logic layer.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"artspace/internal/featureflags"
	"artspace/internal/models"
	"artspace/internal/observability"
	"artspace/internal/repository"
)

// Limits for artwork submissions.
const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 2000
	MaxTagsPerArtwork    = 10
	MaxTagLength         = 40
	InlineCommentCount   = 2
)

// CreateArtworkInput is the payload for publishing a new piece.
type CreateArtworkInput struct {
	Title           string
	Description     string
	ImageURL        string
	Category        string
	UsedAI          bool
	AITools         string
	NSFW            bool
	CommentsEnabled bool
	Tags            []string
}

// UpdateArtworkInput carries the mutable fields of an artwork.
type UpdateArtworkInput struct {
	Title           string
	Description     string
	Category        string
	UsedAI          bool
	AITools         string
	NSFW            bool
	CommentsEnabled bool
}

// FeedService builds the explore and following feeds and owns the
// artwork lifecycle.
type FeedService struct {
	artworks repository.ArtworkRepository
	comments repository.CommentRepository
	flags    *featureflags.Manager
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
	now      func() time.Time
}

// NewFeedService creates a new feed service.
func NewFeedService(
	artworks repository.ArtworkRepository,
	comments repository.CommentRepository,
	flags *featureflags.Manager,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *FeedService {
	return &FeedService{
		artworks: artworks,
		comments: comments,
		flags:    flags,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

func normalizeSort(sort string) string {
	switch sort {
	case repository.SortTrending, repository.SortPopular, repository.SortLatest:
		return sort
	case "":
		return repository.SortTrending
	default:
		return ""
	}
}

// ExploreQuery carries the optional explore filters. All of them are
// conjunctive when combined.
type ExploreQuery struct {
	Sort     string
	Tag      string
	Category string
	Search   string
}

// Explore returns the public feed page for the given sort and optional
// tag, category, and search filters.
func (s *FeedService) Explore(ctx context.Context, viewerID uint, query ExploreQuery, page, pageSize int) (*models.Page, error) {
	sort := normalizeSort(query.Sort)
	if sort == "" {
		return nil, models.NewValidationError("unknown sort, use trending, popular, or latest", nil)
	}
	observability.FeedQueries.WithLabelValues("explore", sort).Inc()

	filter := repository.ArtworkFilter{
		Sort:        sort,
		Tag:         strings.ToLower(strings.TrimSpace(query.Tag)),
		Category:    strings.TrimSpace(query.Category),
		Query:       strings.TrimSpace(query.Search),
		IncludeNSFW: viewerID != 0 && s.flags.EnabledForUser(featureflags.FlagExploreNSFW, viewerID),
	}
	return s.listPage(ctx, filter, viewerID, page, pageSize)
}

// Following returns the personal feed: artworks by authors the viewer
// follows, plus the viewer's own.
func (s *FeedService) Following(ctx context.Context, viewerID uint, sort, category string, page, pageSize int) (*models.Page, error) {
	sort = normalizeSort(sort)
	if sort == "" {
		return nil, models.NewValidationError("unknown sort, use trending, popular, or latest", nil)
	}
	observability.FeedQueries.WithLabelValues("following", sort).Inc()

	filter := repository.ArtworkFilter{
		Sort:        sort,
		Category:    strings.TrimSpace(category),
		FollowedBy:  viewerID,
		IncludeNSFW: true, // a curated feed shows everything its authors post
	}
	return s.listPage(ctx, filter, viewerID, page, pageSize)
}

// ByUser returns an author's gallery. Authors always see their own
// NSFW pieces.
func (s *FeedService) ByUser(ctx context.Context, authorID, viewerID uint, page, pageSize int) (*models.Page, error) {
	observability.FeedQueries.WithLabelValues("profile", repository.SortLatest).Inc()

	filter := repository.ArtworkFilter{
		Sort:        repository.SortLatest,
		AuthorID:    authorID,
		IncludeNSFW: authorID == viewerID,
	}
	return s.listPage(ctx, filter, viewerID, page, pageSize)
}

// Saved returns the viewer's private saved collection.
func (s *FeedService) Saved(ctx context.Context, viewerID uint, page, pageSize int) (*models.Page, error) {
	observability.FeedQueries.WithLabelValues("saved", repository.SortLatest).Inc()

	filter := repository.ArtworkFilter{
		Sort:        repository.SortLatest,
		SavedBy:     viewerID,
		IncludeNSFW: true,
	}
	return s.listPage(ctx, filter, viewerID, page, pageSize)
}

func (s *FeedService) listPage(ctx context.Context, filter repository.ArtworkFilter, viewerID uint, page, pageSize int) (*models.Page, error) {
	offset := (page - 1) * pageSize
	artworks, total, err := s.artworks.List(ctx, filter, viewerID, offset, pageSize)
	if err != nil {
		return nil, models.NewInternalError("failed to load feed", err)
	}

	ids := make([]uint, len(artworks))
	for i, a := range artworks {
		ids[i] = a.ID
	}
	recent, err := s.comments.RecentByArtworkIDs(ctx, ids, InlineCommentCount)
	if err != nil {
		// Previews are decoration; the feed still renders without them.
		slog.WarnContext(ctx, "failed to load inline comments", slog.String("error", err.Error()))
		recent = nil
	}

	now := s.now()
	views := make([]models.ArtworkView, len(artworks))
	for i := range artworks {
		view := models.NewArtworkView(&artworks[i], now)
		for _, c := range recent[artworks[i].ID] {
			c := c
			view.RecentComments = append(view.RecentComments, models.NewCommentView(&c, now))
		}
		views[i] = view
	}

	p := models.NewPage(views, page, pageSize, total)
	return &p, nil
}

// Detail returns one artwork with its newest comments and records the
// view. The view bump is best-effort and never fails the read.
func (s *FeedService) Detail(ctx context.Context, artworkID, viewerID uint) (*models.ArtworkView, error) {
	artwork, err := s.artworks.GetByID(ctx, artworkID, viewerID)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}

	if err := s.artworks.RecordView(ctx, artworkID); err != nil {
		slog.WarnContext(ctx, "failed to record view",
			slog.Uint64("artwork_id", uint64(artworkID)),
			slog.String("error", err.Error()),
		)
	} else {
		artwork.ViewsCount++
	}

	now := s.now()
	view := models.NewArtworkView(artwork, now)

	comments, _, err := s.comments.ListByArtwork(ctx, artworkID, 0, 20)
	if err != nil {
		return nil, models.NewInternalError("failed to load comments", err)
	}
	for i := range comments {
		view.Comments = append(view.Comments, models.NewCommentView(&comments[i], now))
	}
	return &view, nil
}

// NormalizeTags lowercases, trims, dedupes, and length-checks tag names.
func NormalizeTags(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		if len(name) > MaxTagLength {
			return nil, models.NewValidationError("tag names must be at most 40 characters", nil)
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) > MaxTagsPerArtwork {
		return nil, models.NewValidationError("at most 10 tags per artwork", nil)
	}
	return out, nil
}

// Create publishes a new artwork.
func (s *FeedService) Create(ctx context.Context, userID uint, input CreateArtworkInput) (*models.ArtworkView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, models.NewValidationError("title is required", nil)
	}
	if len(title) > MaxTitleLength {
		return nil, models.NewValidationError("title must be at most 120 characters", nil)
	}
	if len(input.Description) > MaxDescriptionLength {
		return nil, models.NewValidationError("description must be at most 2000 characters", nil)
	}
	if input.ImageURL == "" {
		return nil, models.NewValidationError("image is required", nil)
	}
	tags, err := NormalizeTags(input.Tags)
	if err != nil {
		return nil, err
	}

	artwork := &models.Artwork{
		UserID:          userID,
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		ImageURL:        input.ImageURL,
		Category:        strings.TrimSpace(input.Category),
		UsedAI:          input.UsedAI,
		AITools:         strings.TrimSpace(input.AITools),
		NSFW:            input.NSFW,
		CommentsEnabled: input.CommentsEnabled,
	}
	if err := s.artworks.Create(ctx, artwork, tags); err != nil {
		return nil, models.NewInternalError("failed to create artwork", err)
	}

	created, err := s.artworks.GetByID(ctx, artwork.ID, userID)
	if err != nil || created == nil {
		return nil, models.NewInternalError("failed to load created artwork", err)
	}
	view := models.NewArtworkView(created, s.now())
	return &view, nil
}

// Update edits an artwork's mutable fields. Only the owner or an admin
// may edit.
func (s *FeedService) Update(ctx context.Context, artworkID, requesterID uint, input UpdateArtworkInput) (*models.ArtworkView, error) {
	artwork, err := s.artworks.GetByID(ctx, artworkID, requesterID)
	if err != nil {
		return nil, models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return nil, models.NewNotFoundError("artwork not found", nil)
	}
	if err := s.authorize(ctx, artwork.UserID, requesterID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, models.NewValidationError("title must be between 1 and 120 characters", nil)
	}
	if len(input.Description) > MaxDescriptionLength {
		return nil, models.NewValidationError("description must be at most 2000 characters", nil)
	}

	artwork.Title = title
	artwork.Description = strings.TrimSpace(input.Description)
	artwork.Category = strings.TrimSpace(input.Category)
	artwork.UsedAI = input.UsedAI
	artwork.AITools = strings.TrimSpace(input.AITools)
	artwork.NSFW = input.NSFW
	artwork.CommentsEnabled = input.CommentsEnabled
	if err := s.artworks.Update(ctx, artwork); err != nil {
		return nil, models.NewInternalError("failed to update artwork", err)
	}

	view := models.NewArtworkView(artwork, s.now())
	return &view, nil
}

// Delete removes an artwork. Only the owner or an admin may delete.
func (s *FeedService) Delete(ctx context.Context, artworkID, requesterID uint) error {
	artwork, err := s.artworks.GetByID(ctx, artworkID, 0)
	if err != nil {
		return models.NewInternalError("failed to load artwork", err)
	}
	if artwork == nil {
		return models.NewNotFoundError("artwork not found", nil)
	}
	if err := s.authorize(ctx, artwork.UserID, requesterID); err != nil {
		return err
	}

	if err := s.artworks.Delete(ctx, artworkID); err != nil {
		return models.NewInternalError("failed to delete artwork", err)
	}
	return nil
}

func (s *FeedService) authorize(ctx context.Context, ownerID, requesterID uint) error {
	if ownerID == requesterID {
		return nil
	}
	admin, err := s.isAdmin(ctx, requesterID)
	if err != nil {
		return models.NewInternalError("failed to check permissions", err)
	}
	if !admin {
		return models.NewForbiddenError("you do not have permission to modify this artwork", nil)
	}
	return nil
}
