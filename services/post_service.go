package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/utils"
)

// PostService owns the post lifecycle: creation with the image/thumbnail
// policy, cascading withdrawal, drafts, modification and listing. Every write
// operation runs as a single transaction.
type PostService struct {
	db    *gorm.DB
	quota QuotaPolicy
}

// NewPostService creates a PostService without a quota policy.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// SetQuotaPolicy installs an optional creation quota hook.
func (s *PostService) SetQuotaPolicy(p QuotaPolicy) {
	s.quota = p
}

// Create inserts the post and attaches its images in one transaction.
// The post row is written first so image rows can reference its id. Image URLs
// are claimed in input order; the first becomes the thumbnail. An empty URL
// list attaches the system default image as thumbnail, so a persisted post
// always has at least one image.
func (s *PostService) Create(post *models.Post, imageURLs []string) (uint, error) {
	if post.MemberID == 0 || post.SomID == 0 || post.Title == "" || post.Content == "" {
		return 0, fmt.Errorf("%w: member, som, title and content are required", ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var som models.Som
		if err := tx.First(&som, post.SomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: som %d does not exist", ErrValidation, post.SomID)
			}
			return err
		}

		var joined int64
		if err := tx.Model(&models.SomMember{}).
			Where("som_id = ? AND member_id = ?", post.SomID, post.MemberID).
			Count(&joined).Error; err != nil {
			return err
		}
		if joined == 0 {
			return fmt.Errorf("%w: member %d has not joined som %d", ErrValidation, post.MemberID, post.SomID)
		}

		if s.quota != nil {
			if err := s.quota(tx, post.MemberID, post.SomID); err != nil {
				return err
			}
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		if len(imageURLs) == 0 {
			return tx.Create(&models.PostImage{
				URL:         config.Get().DefaultPostImageURL,
				PostID:      post.ID,
				SortOrder:   0,
				IsThumbnail: true,
			}).Error
		}

		for i, url := range imageURLs {
			// Claim the pre-uploaded row by URL; fall back to a fresh row for
			// URLs that never went through the upload endpoint.
			res := tx.Model(&models.PostImage{}).
				Where("url = ? AND post_id = 0", url).
				Updates(map[string]interface{}{
					"post_id":      post.ID,
					"sort_order":   i,
					"is_thumbnail": i == 0,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&models.PostImage{
					URL:         url,
					PostID:      post.ID,
					SortOrder:   i,
					IsThumbnail: i == 0,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// Withdraw removes a post and every record referencing it, dependents first so
// no row ever points at a missing post. A missing post yields ErrNotFound and
// nothing is deleted.
func (s *PostService) Withdraw(postID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.RecentView{}).Error; err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Post{}, postID).Error
	})
}

// RegisterDraft saves a post-shaped record without running the image policy.
func (s *PostService) RegisterDraft(draft *models.PostDraft) error {
	if draft.MemberID == 0 {
		return fmt.Errorf("%w: member is required", ErrValidation)
	}
	return s.db.Create(draft).Error
}

// GetForUpdate loads a post and its images for the edit form.
func (s *PostService) GetForUpdate(postID uint) (*PostForUpdate, error) {
	var out PostForUpdate
	if err := s.db.First(&out.Post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Where("post_id = ?", postID).
		Order("sort_order ASC, id ASC").
		Find(&out.Images).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Modify overwrites the mutable fields of a post. The view count is never
// touched here.
func (s *PostService) Modify(post *models.Post) error {
	if post.ID == 0 || post.Title == "" || post.Content == "" {
		return fmt.Errorf("%w: id, title and content are required", ErrValidation)
	}
	res := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"som_id":     post.SomID,
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns post summaries, optionally filtered to one som and ordered by
// the requested strategy. The acting member id only marks which rows they
// already liked.
func (s *PostService) List(somID *uint, order string, memberID uint) ([]PostSummary, error) {
	q := s.db.Model(&models.Post{})
	if somID != nil {
		q = q.Where("som_id = ?", *somID)
	}
	switch order {
	case OrderViews:
		q = q.Order("view_count DESC, id DESC")
	default:
		q = q.Order("created_at DESC, id DESC")
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}

	summaries, err := s.buildSummaries(posts, memberID)
	if err != nil {
		return nil, err
	}
	if order == OrderLikes {
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].LikeCount > summaries[j].LikeCount
		})
	}
	return summaries, nil
}

// RecentViews returns the posts the member viewed most recently, newest first.
// Withdrawn posts drop out because their recent-view rows are cascaded away.
func (s *PostService) RecentViews(memberID uint) ([]PostSummary, error) {
	var views []models.RecentView
	if err := s.db.Where("member_id = ?", memberID).
		Order("viewed_at DESC").Limit(50).
		Find(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return []PostSummary{}, nil
	}

	ids := make([]uint, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.PostID)
	}
	var posts []models.Post
	if err := s.db.Find(&posts, ids).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	// preserve recency order
	ordered := make([]models.Post, 0, len(views))
	for _, v := range views {
		if p, ok := byID[v.PostID]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.buildSummaries(ordered, memberID)
}

// ListSoms returns every som for the category picker.
func (s *PostService) ListSoms() ([]models.Som, error) {
	var soms []models.Som
	if err := s.db.Order("name ASC").Find(&soms).Error; err != nil {
		return nil, err
	}
	return soms, nil
}

// JoinedSoms returns the soms the member belongs to.
func (s *PostService) JoinedSoms(memberID uint) ([]models.Som, error) {
	var soms []models.Som
	err := s.db.
		Joins("JOIN som_members ON som_members.som_id = soms.id").
		Where("som_members.member_id = ?", memberID).
		Order("soms.name ASC").
		Find(&soms).Error
	if err != nil {
		return nil, err
	}
	return soms, nil
}

// JoinSom adds the member to a som. Joining twice is a no-op.
func (s *PostService) JoinSom(somID, memberID uint) error {
	var som models.Som
	if err := s.db.First(&som, somID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err := s.db.Create(&models.SomMember{SomID: somID, MemberID: memberID, JoinedAt: time.Now()}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// buildSummaries decorates posts with thumbnails, counts, author names and the
// viewer's like marks using one grouped query per concern.
func (s *PostService) buildSummaries(posts []models.Post, memberID uint) ([]PostSummary, error) {
	summaries := make([]PostSummary, 0, len(posts))
	if len(posts) == 0 {
		return summaries, nil
	}

	ids := make([]uint, 0, len(posts))
	memberIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		memberIDs = append(memberIDs, p.MemberID)
	}

	var thumbs []models.PostImage
	if err := s.db.Where("post_id IN ? AND is_thumbnail = ?", ids, true).Find(&thumbs).Error; err != nil {
		return nil, err
	}
	thumbByPost := make(map[uint]string, len(thumbs))
	for _, t := range thumbs {
		thumbByPost[t.PostID] = t.URL
	}

	type countRow struct {
		PostID uint
		Cnt    int64
	}
	var likeRows []countRow
	if err := s.db.Model(&models.PostLike{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return nil, err
	}
	likesByPost := make(map[uint]int64, len(likeRows))
	for _, r := range likeRows {
		likesByPost[r.PostID] = r.Cnt
	}

	var commentRows []countRow
	if err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return nil, err
	}
	commentsByPost := make(map[uint]int64, len(commentRows))
	for _, r := range commentRows {
		commentsByPost[r.PostID] = r.Cnt
	}

	likedByMe := map[uint]bool{}
	if memberID != 0 {
		var mine []models.PostLike
		if err := s.db.Where("member_id = ? AND post_id IN ?", memberID, ids).Find(&mine).Error; err != nil {
			return nil, err
		}
		for _, l := range mine {
			likedByMe[l.PostID] = true
		}
	}

	names, err := memberNames(s.db, memberIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		summaries = append(summaries, PostSummary{
			ID:           p.ID,
			SomID:        p.SomID,
			Title:        p.Title,
			Author:       names[p.MemberID],
			ThumbnailURL: thumbByPost[p.ID],
			ViewCount:    p.ViewCount,
			LikeCount:    likesByPost[p.ID],
			CommentCount: commentsByPost[p.ID],
			Liked:        likedByMe[p.ID],
			CreatedAt:    p.CreatedAt,
		})
	}
	return summaries, nil
}

// memberNames resolves usernames for a set of member ids.
func memberNames(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := map[uint]string{}
	ids = utils.UniqueUint(ids)
	if len(ids) == 0 {
		return names, nil
	}
	var members []models.Member
	if err := db.Find(&members, ids).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		names[m.ID] = m.Username
	}
	return names, nil
}
