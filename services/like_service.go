package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
)

// LikeService flips the like state of a (post, member) pair. Existence of the
// row is the whole state; there is no counter column to drift.
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Toggle checks the current like row and flips it, returning the resulting
// state (true = liked). The check and the flip share one transaction; if two
// toggles race past the check anyway, the unique index rejects the second
// insert and the loser gets ErrConflict instead of a duplicate row.
func (s *LikeService) Toggle(postID, memberID uint) (bool, error) {
	if memberID == 0 {
		return false, ErrValidation
	}

	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.PostLike
		err := tx.Where("post_id = ? AND member_id = ?", postID, memberID).
			First(&existing).Error
		switch {
		case err == nil:
			liked = false
			return tx.Delete(&models.PostLike{}, existing.ID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			if err := tx.Create(&models.PostLike{PostID: postID, MemberID: memberID}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConflict
				}
				return err
			}
			return nil
		default:
			return err
		}
	})
	return liked, err
}

// Exists reports whether the member currently likes the post.
func (s *LikeService) Exists(postID, memberID uint) (bool, error) {
	var cnt int64
	err := s.db.Model(&models.PostLike{}).
		Where("post_id = ? AND member_id = ?", postID, memberID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
