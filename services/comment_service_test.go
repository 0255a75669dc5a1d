package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecotton/somboard/models"
)

func TestInsertCommentMissingPost(t *testing.T) {
	db := newTestDB(t)
	bob := seedMember(t, db, "bob")
	svc := NewCommentService(db)

	_, err := svc.InsertComment(&models.Comment{PostID: 9999, MemberID: bob, Content: "lost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)

	_, err := svc.InsertComment(&models.Comment{PostID: 1, MemberID: 1, Content: ""})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.InsertComment(&models.Comment{PostID: 1, MemberID: 0, Content: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInsertReplyMissingComment(t *testing.T) {
	db := newTestDB(t)
	bob := seedMember(t, db, "bob")
	svc := NewCommentService(db)

	_, err := svc.InsertReply(&models.Reply{CommentID: 9999, MemberID: bob, Content: "lost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "threaded")

	svc := NewCommentService(db)
	doomed, err := svc.InsertComment(&models.Comment{PostID: postID, MemberID: bob, Content: "doomed"})
	require.NoError(t, err)
	kept, err := svc.InsertComment(&models.Comment{PostID: postID, MemberID: alice, Content: "kept"})
	require.NoError(t, err)
	_, err = svc.InsertReply(&models.Reply{CommentID: doomed, MemberID: alice, Content: "r1"})
	require.NoError(t, err)
	keptReply, err := svc.InsertReply(&models.Reply{CommentID: kept, MemberID: bob, Content: "r2"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(doomed))

	assert.Equal(t, int64(0), countRows(t, db, &models.Comment{}, "id = ?", doomed))
	assert.Equal(t, int64(0), countRows(t, db, &models.Reply{}, "comment_id = ?", doomed))
	// the sibling thread is untouched
	assert.Equal(t, int64(1), countRows(t, db, &models.Comment{}, "id = ?", kept))
	assert.Equal(t, int64(1), countRows(t, db, &models.Reply{}, "id = ?", keptReply))
}

func TestDeleteCommentMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	assert.ErrorIs(t, svc.DeleteComment(9999), ErrNotFound)
}

func TestDeleteReplyLeavesSiblings(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "replied")

	svc := NewCommentService(db)
	commentID, err := svc.InsertComment(&models.Comment{PostID: postID, MemberID: alice, Content: "parent"})
	require.NoError(t, err)
	first, err := svc.InsertReply(&models.Reply{CommentID: commentID, MemberID: alice, Content: "r1"})
	require.NoError(t, err)
	second, err := svc.InsertReply(&models.Reply{CommentID: commentID, MemberID: alice, Content: "r2"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReply(first))

	assert.Equal(t, int64(0), countRows(t, db, &models.Reply{}, "id = ?", first))
	assert.Equal(t, int64(1), countRows(t, db, &models.Reply{}, "id = ?", second))
	assert.Equal(t, int64(1), countRows(t, db, &models.Comment{}, "id = ?", commentID))
}

func TestDeleteReplyMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	assert.ErrorIs(t, svc.DeleteReply(9999), ErrNotFound)
}

func TestGetCommentAndReply(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "owned")

	svc := NewCommentService(db)
	commentID, err := svc.InsertComment(&models.Comment{PostID: postID, MemberID: alice, Content: "mine"})
	require.NoError(t, err)
	replyID, err := svc.InsertReply(&models.Reply{CommentID: commentID, MemberID: alice, Content: "also mine"})
	require.NoError(t, err)

	c, err := svc.GetComment(commentID)
	require.NoError(t, err)
	assert.Equal(t, alice, c.MemberID)

	r, err := svc.GetReply(replyID)
	require.NoError(t, err)
	assert.Equal(t, alice, r.MemberID)

	_, err = svc.GetComment(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetReply(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
