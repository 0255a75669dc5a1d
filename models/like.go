package models

import "time"

// PostLike records that a member likes a post. Existence of the row is the
// state; the unique composite index keeps at most one row per pair even under
// concurrent toggles.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index:idx_post_member_like,unique;not null" json:"post_id"`
	MemberID  uint      `gorm:"index:idx_post_member_like,unique;not null" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}
