package models

import "time"

// Reply is a single-level answer to a comment. Replies do not nest further.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"index;not null" json:"comment_id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
