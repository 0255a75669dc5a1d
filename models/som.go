package models

import "time"

// Som is a membership-gated category a post belongs to.
type Som struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SomMember links a member to a som they joined. A member may join many soms.
type SomMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	SomID    uint      `gorm:"index:idx_som_member,unique;not null" json:"som_id"`
	MemberID uint      `gorm:"index:idx_som_member,unique;not null" json:"member_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
