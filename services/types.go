package services

import (
	"time"

	"github.com/bluecotton/somboard/models"
)

// Listing order strategies. Anything unrecognized falls back to OrderLatest.
const (
	OrderLatest = "latest"
	OrderViews  = "views"
	OrderLikes  = "likes"
)

// ReplyView is a reply enriched with its author's name.
type ReplyView struct {
	models.Reply
	Author string `json:"author"`
}

// CommentView is a comment carrying its full reply list. Replies is never nil;
// a comment without replies has an empty list.
type CommentView struct {
	models.Comment
	Author  string      `json:"author"`
	Replies []ReplyView `json:"replies"`
}

// PostDetail is the composed read model for the detail page: the post, its
// images, the complete comment/reply tree and the like state for the viewer.
type PostDetail struct {
	models.Post
	Author    string             `json:"author"`
	Images    []models.PostImage `json:"images"`
	Comments  []CommentView      `json:"comments"`
	LikeCount int64              `json:"like_count"`
	Liked     bool               `json:"liked"`
}

// PostSummary is a listing row.
type PostSummary struct {
	ID           uint      `json:"id"`
	SomID        uint      `json:"som_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostForUpdate is the edit-form read model: the post plus its current images.
type PostForUpdate struct {
	models.Post
	Images []models.PostImage `json:"images"`
}
