package service

import (
	"context"
	"testing"
	"time"

	"artspace/internal/featureflags"
	"artspace/internal/models"
	"artspace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedService(t *testing.T, artworks *artworkRepoStub, comments *commentRepoStub) *FeedService {
	t.Helper()
	flags, err := featureflags.NewManager("")
	require.NoError(t, err)
	s := NewFeedService(artworks, comments, flags, neverAdmin)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestExploreRejectsUnknownSort(t *testing.T) {
	t.Parallel()

	s := newFeedService(t, noopArtworkRepo(), noopCommentRepo())
	_, err := s.Explore(context.Background(), 0, ExploreQuery{Sort: "spiciest"}, 1, 20)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestExploreDefaultsToTrendingAndHidesNSFW(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	var got repository.ArtworkFilter
	artworks.listFn = func(_ context.Context, filter repository.ArtworkFilter, _ uint, offset, limit int) ([]models.Artwork, int64, error) {
		got = filter
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
		return nil, 0, nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())
	_, err := s.Explore(context.Background(), 0, ExploreQuery{Tag: "Inkwork "}, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, repository.SortTrending, got.Sort)
	assert.Equal(t, "inkwork", got.Tag)
	assert.False(t, got.IncludeNSFW)
}

func TestExploreNSFWFlagOptsViewerIn(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	var got repository.ArtworkFilter
	artworks.listFn = func(_ context.Context, filter repository.ArtworkFilter, _ uint, _, _ int) ([]models.Artwork, int64, error) {
		got = filter
		return nil, 0, nil
	}

	flags, err := featureflags.NewManager("explore_nsfw:on")
	require.NoError(t, err)
	s := NewFeedService(artworks, noopCommentRepo(), flags, neverAdmin)

	_, err = s.Explore(context.Background(), 7, ExploreQuery{Sort: "latest"}, 1, 20)
	require.NoError(t, err)
	assert.True(t, got.IncludeNSFW)

	// Anonymous viewers never opt in.
	_, err = s.Explore(context.Background(), 0, ExploreQuery{Sort: "latest"}, 1, 20)
	require.NoError(t, err)
	assert.False(t, got.IncludeNSFW)
}

func TestExplorePageEnvelope(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.listFn = func(_ context.Context, _ repository.ArtworkFilter, _ uint, offset, limit int) ([]models.Artwork, int64, error) {
		assert.Equal(t, 20, offset)
		return []models.Artwork{{ID: 41}, {ID: 42}}, 45, nil
	}
	comments := noopCommentRepo()
	comments.recentFn = func(_ context.Context, ids []uint, per int) (map[uint][]models.Comment, error) {
		assert.Equal(t, []uint{41, 42}, ids)
		assert.Equal(t, InlineCommentCount, per)
		return map[uint][]models.Comment{
			41: {{ID: 1, ArtworkID: 41, Body: "stunning"}},
		}, nil
	}

	s := newFeedService(t, artworks, comments)
	page, err := s.Explore(context.Background(), 0, ExploreQuery{Sort: "latest"}, 2, 20)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(45), page.Total)
	assert.True(t, page.HasMore) // offset 20 + size 20 = 40 < 45

	views := page.Items.([]models.ArtworkView)
	require.Len(t, views, 2)
	require.Len(t, views[0].RecentComments, 1)
	assert.Equal(t, "stunning", views[0].RecentComments[0].Body)
	assert.Empty(t, views[1].RecentComments)
}

func TestExploreLastPageHasMoreFalse(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.listFn = func(context.Context, repository.ArtworkFilter, uint, int, int) ([]models.Artwork, int64, error) {
		return []models.Artwork{{ID: 1}}, 41, nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())
	page, err := s.Explore(context.Background(), 0, ExploreQuery{Sort: "latest"}, 3, 20)
	require.NoError(t, err)
	assert.False(t, page.HasMore) // offset 40 + size 20 = 60 >= 41
}

func TestFollowingFeedScopesToViewer(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	var got repository.ArtworkFilter
	artworks.listFn = func(_ context.Context, filter repository.ArtworkFilter, viewerID uint, _, _ int) ([]models.Artwork, int64, error) {
		got = filter
		assert.Equal(t, uint(9), viewerID)
		return nil, 0, nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())
	_, err := s.Following(context.Background(), 9, "latest", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.FollowedBy)
	assert.True(t, got.IncludeNSFW)
}

func TestDetailRecordsViewAndBumpsCount(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.getByIDFn = func(ctx context.Context, id, viewerID uint) (*models.Artwork, error) {
		return &models.Artwork{ID: id, ViewsCount: 10, User: &models.User{ID: 2, Username: "maya"}}, nil
	}
	recorded := false
	artworks.recordViewFn = func(_ context.Context, id uint) error {
		recorded = true
		assert.Equal(t, uint(5), id)
		return nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())
	view, err := s.Detail(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.True(t, recorded)
	assert.Equal(t, 11, view.ViewsCount)
	assert.Equal(t, "maya", view.Author.Username)
}

func TestDetailSurvivesViewRecordingFailure(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.getByIDFn = func(ctx context.Context, id, viewerID uint) (*models.Artwork, error) {
		return &models.Artwork{ID: id, ViewsCount: 10}, nil
	}
	artworks.recordViewFn = func(context.Context, uint) error { return assert.AnError }

	s := newFeedService(t, artworks, noopCommentRepo())
	view, err := s.Detail(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, view.ViewsCount)
}

func TestDetailNotFound(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.getByIDFn = func(context.Context, uint, uint) (*models.Artwork, error) { return nil, nil }

	s := newFeedService(t, artworks, noopCommentRepo())
	_, err := s.Detail(context.Background(), 999, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	s := newFeedService(t, noopArtworkRepo(), noopCommentRepo())

	tests := []struct {
		name  string
		input CreateArtworkInput
	}{
		{"missing title", CreateArtworkInput{ImageURL: "u"}},
		{"blank title", CreateArtworkInput{Title: "   ", ImageURL: "u"}},
		{"missing image", CreateArtworkInput{Title: "ok"}},
		{"too many tags", CreateArtworkInput{Title: "ok", ImageURL: "u", Tags: []string{
			"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k",
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.Create(context.Background(), 1, tt.input)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tags, err := NormalizeTags([]string{" Inkwork ", "inkwork", "OIL", "", "oil"})
	require.NoError(t, err)
	assert.Equal(t, []string{"inkwork", "oil"}, tags)
}

func TestDeleteRequiresOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	artworks.getByIDFn = func(ctx context.Context, id, viewerID uint) (*models.Artwork, error) {
		return &models.Artwork{ID: id, UserID: 2}, nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())

	var appErr *models.AppError
	err := s.Delete(context.Background(), 5, 3) // not the owner
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeForbidden, appErr.Code)

	require.NoError(t, s.Delete(context.Background(), 5, 2)) // owner

	admin := func(context.Context, uint) (bool, error) { return true, nil }
	flags, err2 := featureflags.NewManager("")
	require.NoError(t, err2)
	sAdmin := NewFeedService(artworks, noopCommentRepo(), flags, admin)
	require.NoError(t, sAdmin.Delete(context.Background(), 5, 3))
}

func TestExploreSearchWithNoMatchesReturnsEmptyPage(t *testing.T) {
	t.Parallel()

	artworks := noopArtworkRepo()
	var got repository.ArtworkFilter
	artworks.listFn = func(_ context.Context, filter repository.ArtworkFilter, _ uint, _, _ int) ([]models.Artwork, int64, error) {
		got = filter
		return nil, 0, nil
	}

	s := newFeedService(t, artworks, noopCommentRepo())
	page, err := s.Explore(context.Background(), 0, ExploreQuery{
		Sort:     "latest",
		Search:   "sunset",
		Category: "digital",
	}, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, "sunset", got.Query)
	assert.Equal(t, "digital", got.Category)
	assert.Equal(t, int64(0), page.Total)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Items.([]models.ArtworkView))
}
