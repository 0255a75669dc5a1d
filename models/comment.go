package models

import "time"

// Comment is a top-level comment on a post. Its replies live in the replies
// table and are removed together with the comment.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
