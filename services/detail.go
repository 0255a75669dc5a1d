package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bluecotton/somboard/models"
)

// GetDetail assembles the full detail view for one post: the post itself, its
// images, the complete comment/reply tree, and the viewer's like state.
//
// Every fetch counts as a view: the view count goes up by one and the acting
// member's recent-view row is refreshed, with no de-duplication window. Both
// writes share the transaction with the existence check, so a missing post
// aborts before any view is recorded.
func (s *PostService) GetDetail(postID, memberID uint) (*PostDetail, error) {
	if memberID == 0 {
		return nil, ErrValidation
	}

	var detail PostDetail
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&detail.Post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return err
		}
		detail.ViewCount++

		// Upsert keeps one recency row per (member, post) even when the same
		// member opens the post from two tabs at once.
		now := time.Now()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": now}),
		}).Create(&models.RecentView{MemberID: memberID, PostID: postID, ViewedAt: now}).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", postID).
			Order("sort_order ASC, id ASC").
			Find(&detail.Images).Error; err != nil {
			return err
		}

		var comments []models.Comment
		if err := tx.Where("post_id = ?", postID).
			Order("created_at ASC, id ASC").
			Find(&comments).Error; err != nil {
			return err
		}

		authorIDs := []uint{detail.Post.MemberID}
		detail.Comments = make([]CommentView, 0, len(comments))
		for _, c := range comments {
			var replies []models.Reply
			if err := tx.Where("comment_id = ?", c.ID).
				Order("created_at ASC, id ASC").
				Find(&replies).Error; err != nil {
				return err
			}
			view := CommentView{Comment: c, Replies: make([]ReplyView, 0, len(replies))}
			for _, r := range replies {
				view.Replies = append(view.Replies, ReplyView{Reply: r})
				authorIDs = append(authorIDs, r.MemberID)
			}
			authorIDs = append(authorIDs, c.MemberID)
			detail.Comments = append(detail.Comments, view)
		}

		if err := tx.Model(&models.PostLike{}).Where("post_id = ?", postID).
			Count(&detail.LikeCount).Error; err != nil {
			return err
		}
		var mine int64
		if err := tx.Model(&models.PostLike{}).
			Where("post_id = ? AND member_id = ?", postID, memberID).
			Count(&mine).Error; err != nil {
			return err
		}
		detail.Liked = mine > 0

		names, err := memberNames(tx, authorIDs)
		if err != nil {
			return err
		}
		detail.Author = names[detail.Post.MemberID]
		for i := range detail.Comments {
			detail.Comments[i].Author = names[detail.Comments[i].MemberID]
			for j := range detail.Comments[i].Replies {
				detail.Comments[i].Replies[j].Author = names[detail.Comments[i].Replies[j].MemberID]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
