package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
)

// ReportService records member reports against posts. Reports only matter to
// withdrawal (they are cascaded away with the post) and to moderation tooling
// reading the table directly.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a ReportService.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Report files a report. A second report by the same member on the same post
// hits the unique index and comes back as ErrConflict.
func (s *ReportService) Report(postID, memberID uint, reason string) error {
	if memberID == 0 {
		return ErrValidation
	}
	var post models.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err := s.db.Create(&models.PostReport{PostID: postID, MemberID: memberID, Reason: reason}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}
