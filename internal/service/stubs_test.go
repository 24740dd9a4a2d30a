package service

import (
	"context"

	"artspace/internal/models"
	"artspace/internal/repository"
)

// --- artwork repo stub ---

type artworkRepoStub struct {
	createFn     func(ctx context.Context, artwork *models.Artwork, tagNames []string) error
	getByIDFn    func(ctx context.Context, id uint, viewerID uint) (*models.Artwork, error)
	listFn       func(ctx context.Context, filter repository.ArtworkFilter, viewerID uint, offset, limit int) ([]models.Artwork, int64, error)
	updateFn     func(ctx context.Context, artwork *models.Artwork) error
	deleteFn     func(ctx context.Context, id uint) error
	recordViewFn func(ctx context.Context, id uint) error
}

func noopArtworkRepo() *artworkRepoStub {
	return &artworkRepoStub{
		createFn: func(context.Context, *models.Artwork, []string) error { return nil },
		getByIDFn: func(ctx context.Context, id, viewerID uint) (*models.Artwork, error) {
			return &models.Artwork{ID: id, CommentsEnabled: true}, nil
		},
		listFn: func(context.Context, repository.ArtworkFilter, uint, int, int) ([]models.Artwork, int64, error) {
			return nil, 0, nil
		},
		updateFn:     func(context.Context, *models.Artwork) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		recordViewFn: func(context.Context, uint) error { return nil },
	}
}

func (s *artworkRepoStub) Create(ctx context.Context, artwork *models.Artwork, tagNames []string) error {
	return s.createFn(ctx, artwork, tagNames)
}
func (s *artworkRepoStub) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Artwork, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *artworkRepoStub) List(ctx context.Context, filter repository.ArtworkFilter, viewerID uint, offset, limit int) ([]models.Artwork, int64, error) {
	return s.listFn(ctx, filter, viewerID, offset, limit)
}
func (s *artworkRepoStub) Update(ctx context.Context, artwork *models.Artwork) error {
	return s.updateFn(ctx, artwork)
}
func (s *artworkRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *artworkRepoStub) RecordView(ctx context.Context, id uint) error {
	return s.recordViewFn(ctx, id)
}

// --- comment repo stub ---

type commentRepoStub struct {
	createFn        func(ctx context.Context, comment *models.Comment) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Comment, error)
	listByArtworkFn func(ctx context.Context, artworkID uint, offset, limit int) ([]models.Comment, int64, error)
	recentFn        func(ctx context.Context, artworkIDs []uint, perArtwork int) (map[uint][]models.Comment, error)
	deleteFn        func(ctx context.Context, id uint) error
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Comment, error) { return nil, nil },
		listByArtworkFn: func(context.Context, uint, int, int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		recentFn: func(context.Context, []uint, int) (map[uint][]models.Comment, error) {
			return map[uint][]models.Comment{}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArtwork(ctx context.Context, artworkID uint, offset, limit int) ([]models.Comment, int64, error) {
	return s.listByArtworkFn(ctx, artworkID, offset, limit)
}
func (s *commentRepoStub) RecentByArtworkIDs(ctx context.Context, artworkIDs []uint, perArtwork int) (map[uint][]models.Comment, error) {
	return s.recentFn(ctx, artworkIDs, perArtwork)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

// --- interaction repo stub ---

type interactionRepoStub struct {
	toggleLikeFn     func(ctx context.Context, userID, artworkID uint) (bool, int, error)
	toggleSaveFn     func(ctx context.Context, userID, artworkID uint) (bool, int, error)
	toggleFollowFn   func(ctx context.Context, followerID, followeeID uint) (bool, int, error)
	isFollowingFn    func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followerCountFn  func(ctx context.Context, userID uint) (int64, error)
	followingCountFn func(ctx context.Context, userID uint) (int64, error)
	listFollowersFn  func(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
	listFollowingFn  func(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error)
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		toggleLikeFn:     func(context.Context, uint, uint) (bool, int, error) { return true, 1, nil },
		toggleSaveFn:     func(context.Context, uint, uint) (bool, int, error) { return true, 1, nil },
		toggleFollowFn:   func(context.Context, uint, uint) (bool, int, error) { return true, 1, nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followerCountFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		followingCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
		listFollowersFn: func(context.Context, uint, int, int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		listFollowingFn: func(context.Context, uint, int, int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

func (s *interactionRepoStub) ToggleLike(ctx context.Context, userID, artworkID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, artworkID)
}
func (s *interactionRepoStub) ToggleSave(ctx context.Context, userID, artworkID uint) (bool, int, error) {
	return s.toggleSaveFn(ctx, userID, artworkID)
}
func (s *interactionRepoStub) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, int, error) {
	return s.toggleFollowFn(ctx, followerID, followeeID)
}
func (s *interactionRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *interactionRepoStub) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followerCountFn(ctx, userID)
}
func (s *interactionRepoStub) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followingCountFn(ctx, userID)
}
func (s *interactionRepoStub) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	return s.listFollowersFn(ctx, userID, offset, limit)
}
func (s *interactionRepoStub) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.User, int64, error) {
	return s.listFollowingFn(ctx, userID, offset, limit)
}

// --- user repo stub ---

type userRepoStub struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
	countArtworksFn func(ctx context.Context, userID uint) (int64, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(context.Context, *models.User) error { return nil },
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "stub"}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		countArtworksFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) CountArtworks(ctx context.Context, userID uint) (int64, error) {
	return s.countArtworksFn(ctx, userID)
}

// --- shared helpers ---

func neverAdmin(context.Context, uint) (bool, error) { return false, nil }
