package models

import "time"

// RecentView remembers when a member last viewed a post. A repeat view
// refreshes ViewedAt instead of inserting a second row.
type RecentView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	MemberID uint      `gorm:"index:idx_member_post_recent,unique;not null" json:"member_id"`
	PostID   uint      `gorm:"index:idx_member_post_recent,unique;not null" json:"post_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`
}
