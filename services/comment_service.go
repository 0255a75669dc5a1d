package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
)

// CommentService manages comments and their single-level replies.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// InsertComment appends a comment to an existing post.
func (s *CommentService) InsertComment(c *models.Comment) (uint, error) {
	if c.MemberID == 0 || c.Content == "" {
		return 0, fmt.Errorf("%w: member and content are required", ErrValidation)
	}
	var post models.Post
	if err := s.db.Select("id").First(&post, c.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if err := s.db.Create(c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

// InsertReply appends a reply under an existing comment. Replies never nest.
func (s *CommentService) InsertReply(r *models.Reply) (uint, error) {
	if r.MemberID == 0 || r.Content == "" {
		return 0, fmt.Errorf("%w: member and content are required", ErrValidation)
	}
	var comment models.Comment
	if err := s.db.Select("id").First(&comment, r.CommentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if err := s.db.Create(r).Error; err != nil {
		return 0, err
	}
	return r.ID, nil
}

// GetComment loads one comment, for ownership checks at the boundary.
func (s *CommentService) GetComment(commentID uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.First(&c, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetReply loads one reply, for ownership checks at the boundary.
func (s *CommentService) GetReply(replyID uint) (*models.Reply, error) {
	var r models.Reply
	if err := s.db.First(&r, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// DeleteComment removes a comment together with all of its replies. The
// storage schema has no database-level cascade, so replies go first inside the
// same transaction.
func (s *CommentService) DeleteComment(commentID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id").First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

// DeleteReply removes a single reply. Siblings and the parent comment stay.
func (s *CommentService) DeleteReply(replyID uint) error {
	res := s.db.Delete(&models.Reply{}, replyID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
