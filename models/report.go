package models

import "time"

// PostReport is a member's report against a post. One report per member per
// post; reports are removed when the post is withdrawn.
type PostReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index:idx_post_member_report,unique;not null" json:"post_id"`
	MemberID  uint      `gorm:"index:idx_post_member_report,unique;not null" json:"member_id"`
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
