// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"artspace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data gets generated.
type Options struct {
	Users           int
	ArtworksPerUser int
	MaxDays         int // how far back created_at timestamps spread
	Password        string
}

// DefaultOptions is a medium-sized demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:           25,
		ArtworksPerUser: 6,
		MaxDays:         90,
		Password:        "artspace-demo",
	}
}

var seedTags = []string{
	"inkwork", "watercolor", "oil", "digital", "charcoal", "pixel",
	"seascape", "portrait", "abstract", "urban", "botanical", "fantasy",
}

var seedCategories = []string{
	"illustration", "painting", "photography", "3d", "sketch", "mixed-media",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a fake artist account.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(gofakeit.Username())
	if len(username) > 20 {
		username = username[:20]
	}
	if len(username) < 3 {
		username = username + fmt.Sprintf("%03d", f.rand.Intn(1000))
	}

	user := &models.User{
		Username:     username,
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
		DisplayName:  gofakeit.Name(),
		Bio:          gofakeit.Sentence(12),
		AvatarURL:    fmt.Sprintf("https://picsum.photos/seed/avatar-%s/200/200", gofakeit.UUID()),
		CreatedAt:    f.pastTime(),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArtwork persists a fake artwork for the user with 1-4 random tags.
func (f *Factory) CreateArtwork(user *models.User) (*models.Artwork, error) {
	artwork := &models.Artwork{
		UserID:          user.ID,
		Title:           strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Description:     gofakeit.Paragraph(1, 2, 8, "\n"),
		ImageURL:        fmt.Sprintf("https://picsum.photos/seed/%s/1200/900", gofakeit.UUID()),
		Category:        seedCategories[f.rand.Intn(len(seedCategories))],
		UsedAI:          f.rand.Intn(8) == 0,
		NSFW:            f.rand.Intn(20) == 0,
		CommentsEnabled: f.rand.Intn(10) != 0,
		CreatedAt:       f.pastTime(),
	}
	if err := f.db.Create(artwork).Error; err != nil {
		return nil, err
	}

	n := 1 + f.rand.Intn(4)
	picked := f.rand.Perm(len(seedTags))[:n]
	for _, idx := range picked {
		var tag models.Tag
		if err := f.db.Where("name = ?", seedTags[idx]).
			FirstOrCreate(&tag, models.Tag{Name: seedTags[idx]}).Error; err != nil {
			return nil, err
		}
		if err := f.db.Exec(
			"INSERT INTO artwork_tags (artwork_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			artwork.ID, tag.ID,
		).Error; err != nil {
			return nil, err
		}
	}
	return artwork, nil
}

// Run generates the whole demo dataset: users, artworks, a social mesh
// of follows, likes, saves, and comments, then reconciles the
// denormalized counters.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	var artworks []*models.Artwork
	for _, user := range users {
		for i := 0; i < opts.ArtworksPerUser; i++ {
			artwork, err := f.CreateArtwork(user)
			if err != nil {
				return fmt.Errorf("seed artwork: %w", err)
			}
			artworks = append(artworks, artwork)
		}
	}
	log.Printf("seeded %d artworks", len(artworks))

	if err := f.mesh(users, artworks); err != nil {
		return err
	}

	if err := ReconcileCounters(db); err != nil {
		return fmt.Errorf("reconcile counters: %w", err)
	}
	log.Printf("seed complete")
	return nil
}

// mesh wires a plausible social graph between the seeded rows.
func (f *Factory) mesh(users []*models.User, artworks []*models.Artwork) error {
	for _, user := range users {
		// Everyone follows a handful of others.
		for _, idx := range f.rand.Perm(len(users))[:min(5, len(users))] {
			other := users[idx]
			if other.ID == user.ID {
				continue
			}
			if err := f.db.Exec(
				"INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?) ON CONFLICT (follower_id, followee_id) DO NOTHING",
				user.ID, other.ID, f.pastTime(),
			).Error; err != nil {
				return err
			}
		}

		// And likes, saves, and comments a sampling of artworks.
		for _, idx := range f.rand.Perm(len(artworks))[:min(12, len(artworks))] {
			a := artworks[idx]
			if err := f.db.Exec(
				"INSERT INTO likes (user_id, artwork_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, artwork_id) DO NOTHING",
				user.ID, a.ID, f.pastTime(),
			).Error; err != nil {
				return err
			}
			if f.rand.Intn(3) == 0 {
				if err := f.db.Exec(
					"INSERT INTO saves (user_id, artwork_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, artwork_id) DO NOTHING",
					user.ID, a.ID, f.pastTime(),
				).Error; err != nil {
					return err
				}
			}
			if f.rand.Intn(4) == 0 && a.CommentsEnabled {
				comment := &models.Comment{
					ArtworkID: a.ID,
					UserID:    user.ID,
					Body:      gofakeit.Sentence(10),
					CreatedAt: f.pastTime(),
				}
				if err := f.db.Create(comment).Error; err != nil {
					return err
				}
			}
		}

		// Spread some views around.
		if err := f.db.Exec(
			"UPDATE artworks SET views_count = views_count + ? WHERE id IN (SELECT id FROM artworks ORDER BY random() LIMIT 20)",
			f.rand.Intn(50),
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReconcileCounters recomputes the denormalized like and comment
// counters from the source-of-truth tables. Seeding writes the rows
// directly, so the counters need one pass at the end.
func ReconcileCounters(db *gorm.DB) error {
	if err := db.Exec(`
		UPDATE artworks SET likes_count = (
			SELECT COUNT(*) FROM likes WHERE likes.artwork_id = artworks.id
		)`).Error; err != nil {
		return err
	}
	return db.Exec(`
		UPDATE artworks SET comments_count = (
			SELECT COUNT(*) FROM comments WHERE comments.artwork_id = artworks.id
		)`).Error
}
