package models

import "time"

// PostImage is an image attached to a post. Members upload images before the
// post exists: such rows carry PostID=0 until creation claims them by URL, and
// ExpireAt lets the cleaner purge uploads that were never claimed.
type PostImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	FilePath    string    `gorm:"size:1024" json:"-"` // filesystem path for cleanup
	PostID      uint      `gorm:"index" json:"post_id"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	IsThumbnail bool      `gorm:"not null;default:false" json:"is_thumbnail"`
	ExpireAt    time.Time `gorm:"index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
