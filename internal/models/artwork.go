package models

import "time"

// Artwork is a published piece. Like, save, and comment counts are
// denormalized onto the row and maintained transactionally by the
// repositories; views are incremented best-effort on detail reads.
type Artwork struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	User            *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title           string    `json:"title" gorm:"size:120;not null"`
	Description     string    `json:"description" gorm:"size:2000"`
	ImageURL        string    `json:"image_url" gorm:"size:512;not null"`
	Category        string    `json:"category" gorm:"size:60;index"`
	UsedAI          bool      `json:"used_ai" gorm:"default:false"`
	AITools         string    `json:"ai_tools" gorm:"size:255"`
	NSFW            bool      `json:"nsfw" gorm:"default:false"`
	CommentsEnabled bool      `json:"comments_enabled" gorm:"default:true"`
	LikesCount      int       `json:"likes_count" gorm:"default:0;not null"`
	ViewsCount      int       `json:"views_count" gorm:"default:0;not null"`
	CommentsCount   int       `json:"comments_count" gorm:"default:0;not null"`
	Tags            []Tag     `json:"tags,omitempty" gorm:"many2many:artwork_tags"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Per-viewer flags filled by EXISTS subqueries at read time.
	// Never persisted.
	ViewerLiked bool `json:"viewer_liked" gorm:"->;-:migration"`
	ViewerSaved bool `json:"viewer_saved" gorm:"->;-:migration"`
}

// Tag is a label attached to artworks through the artwork_tags join table.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:40;not null"`
	CreatedAt time.Time `json:"created_at"`
}
