package models

import "time"

// AuthorSummary is the compact user projection embedded in feed items,
// comments, and follower lists.
type AuthorSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// NewAuthorSummary builds the projection from a full user row.
func NewAuthorSummary(u *User) AuthorSummary {
	if u == nil {
		return AuthorSummary{}
	}
	return AuthorSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayOrUsername(),
		AvatarURL:   u.AvatarURL,
	}
}

// CommentView is a comment rendered for the API.
type CommentView struct {
	ID        uint          `json:"id"`
	Author    AuthorSummary `json:"author"`
	Body      string        `json:"body"`
	TimeAgo   string        `json:"time_ago"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewCommentView renders a comment relative to now.
func NewCommentView(c *Comment, now time.Time) CommentView {
	return CommentView{
		ID:        c.ID,
		Author:    NewAuthorSummary(c.User),
		Body:      c.Body,
		TimeAgo:   TimeAgo(c.CreatedAt, now),
		CreatedAt: c.CreatedAt,
	}
}

// ArtworkView is an artwork rendered for feeds and detail pages.
type ArtworkView struct {
	ID              uint          `json:"id"`
	Author          AuthorSummary `json:"author"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	ImageURL        string        `json:"image_url"`
	Category        string        `json:"category,omitempty"`
	UsedAI          bool          `json:"used_ai"`
	AITools         string        `json:"ai_tools,omitempty"`
	NSFW            bool          `json:"nsfw"`
	CommentsEnabled bool          `json:"comments_enabled"`
	Tags            []string      `json:"tags"`
	LikesCount      int           `json:"likes_count"`
	ViewsCount      int           `json:"views_count"`
	CommentsCount   int           `json:"comments_count"`
	ViewerLiked     bool          `json:"viewer_liked"`
	ViewerSaved     bool          `json:"viewer_saved"`
	TimeAgo         string        `json:"time_ago"`
	CreatedAt       time.Time     `json:"created_at"`
	RecentComments  []CommentView `json:"recent_comments,omitempty"`
	Comments        []CommentView `json:"comments,omitempty"`
}

// NewArtworkView renders an artwork relative to now. Tag names come out
// in the order the repository loaded them.
func NewArtworkView(a *Artwork, now time.Time) ArtworkView {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, t.Name)
	}
	return ArtworkView{
		ID:              a.ID,
		Author:          NewAuthorSummary(a.User),
		Title:           a.Title,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		Category:        a.Category,
		UsedAI:          a.UsedAI,
		AITools:         a.AITools,
		NSFW:            a.NSFW,
		CommentsEnabled: a.CommentsEnabled,
		Tags:            tags,
		LikesCount:      a.LikesCount,
		ViewsCount:      a.ViewsCount,
		CommentsCount:   a.CommentsCount,
		ViewerLiked:     a.ViewerLiked,
		ViewerSaved:     a.ViewerSaved,
		TimeAgo:         TimeAgo(a.CreatedAt, now),
		CreatedAt:       a.CreatedAt,
	}
}

// Page is the pagination envelope wrapped around list payloads.
type Page struct {
	Items    interface{} `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
	HasMore  bool        `json:"has_more"`
}

// NewPage computes has_more from the absolute offset of the last item
// on this page against the total.
func NewPage(items interface{}, page, pageSize int, total int64) Page {
	offset := (page - 1) * pageSize
	return Page{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasMore:  int64(offset+pageSize) < total,
	}
}

// ToggleResult reports the outcome of an idempotent toggle.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// TagCount is a tag with its artwork usage count, for trending tags.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProfileView is a user profile with live relationship counts.
type ProfileView struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	Age            *int      `json:"age,omitempty"`
	AvatarURL      string    `json:"avatar_url"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	ArtworkCount   int64     `json:"artwork_count"`
	ViewerFollows  bool      `json:"viewer_follows"`
	CreatedAt      time.Time `json:"created_at"`
}
