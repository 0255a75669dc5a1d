package models

import "time"

// Post is a board entry belonging to exactly one som.
// Images are held in post_images and are deleted by an explicit ordered
// cascade in the service layer, not by database-level constraints.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	SomID     uint      `gorm:"index;not null" json:"som_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ViewCount int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
