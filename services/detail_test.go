package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecotton/somboard/models"
)

func TestGetDetailCountsEveryView(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)

	svc := NewPostService(db)
	postID := seedPost(t, db, alice, somID, "popular")

	detail, err := svc.GetDetail(postID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ViewCount)

	// no de-duplication window: a repeat view counts again
	detail, err = svc.GetDetail(postID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ViewCount)

	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)
	assert.Equal(t, int64(2), post.ViewCount)
}

func TestGetDetailUpsertsRecentView(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)

	svc := NewPostService(db)
	postID := seedPost(t, db, alice, somID, "revisited")

	_, err := svc.GetDetail(postID, bob)
	require.NoError(t, err)
	var firstView models.RecentView
	require.NoError(t, db.Where("member_id = ? AND post_id = ?", bob, postID).First(&firstView).Error)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.GetDetail(postID, bob)
	require.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &models.RecentView{}, "member_id = ? AND post_id = ?", bob, postID))
	var secondView models.RecentView
	require.NoError(t, db.Where("member_id = ? AND post_id = ?", bob, postID).First(&secondView).Error)
	assert.True(t, secondView.ViewedAt.After(firstView.ViewedAt))
}

func TestGetDetailAssemblesTree(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)

	svc := NewPostService(db)
	comments := NewCommentService(db)
	postID := seedPost(t, db, alice, somID, "discussed")

	firstComment, err := comments.InsertComment(&models.Comment{PostID: postID, MemberID: bob, Content: "first"})
	require.NoError(t, err)
	secondComment, err := comments.InsertComment(&models.Comment{PostID: postID, MemberID: alice, Content: "second"})
	require.NoError(t, err)
	_, err = comments.InsertReply(&models.Reply{CommentID: firstComment, MemberID: alice, Content: "reply one"})
	require.NoError(t, err)
	_, err = comments.InsertReply(&models.Reply{CommentID: firstComment, MemberID: bob, Content: "reply two"})
	require.NoError(t, err)

	_, err = NewLikeService(db).Toggle(postID, bob)
	require.NoError(t, err)

	detail, err := svc.GetDetail(postID, bob)
	require.NoError(t, err)

	assert.Equal(t, "alice", detail.Author)
	require.Len(t, detail.Images, 1)
	require.Len(t, detail.Comments, 2)

	assert.Equal(t, firstComment, detail.Comments[0].ID)
	assert.Equal(t, "bob", detail.Comments[0].Author)
	require.Len(t, detail.Comments[0].Replies, 2)
	assert.Equal(t, "reply one", detail.Comments[0].Replies[0].Content)
	assert.Equal(t, "alice", detail.Comments[0].Replies[0].Author)

	assert.Equal(t, secondComment, detail.Comments[1].ID)
	require.NotNil(t, detail.Comments[1].Replies)
	assert.Empty(t, detail.Comments[1].Replies)

	assert.Equal(t, int64(1), detail.LikeCount)
	assert.True(t, detail.Liked)

	// a viewer who never liked sees the count but not the mark
	detail, err = svc.GetDetail(postID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.LikeCount)
	assert.False(t, detail.Liked)
}

func TestGetDetailMissingPost(t *testing.T) {
	db := newTestDB(t)
	bob := seedMember(t, db, "bob")
	svc := NewPostService(db)

	_, err := svc.GetDetail(9999, bob)
	assert.ErrorIs(t, err, ErrNotFound)
	// no view side effects for a missing post
	assert.Equal(t, int64(0), countRows(t, db, &models.RecentView{}, "member_id = ?", bob))
}

func TestGetDetailRequiresMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	_, err := svc.GetDetail(1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
