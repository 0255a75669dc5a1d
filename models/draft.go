package models

import "time"

// PostDraft is a post-shaped record saved outside the creation pipeline.
// Drafts carry no images and never appear in listing or detail paths.
type PostDraft struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	SomID     uint      `json:"som_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
