package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecotton/somboard/models"
)

func TestToggleFlipsState(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "likeable")

	svc := NewLikeService(db)

	liked, err := svc.Toggle(postID, bob)
	require.NoError(t, err)
	assert.True(t, liked)

	exists, err := svc.Exists(postID, bob)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, err = svc.Toggle(postID, bob)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), countRows(t, db, &models.PostLike{}, "post_id = ?", postID))

	liked, err = svc.Toggle(postID, bob)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), countRows(t, db, &models.PostLike{}, "post_id = ?", postID))
}

func TestToggleIsPerMember(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "shared")

	svc := NewLikeService(db)
	_, err := svc.Toggle(postID, alice)
	require.NoError(t, err)
	_, err = svc.Toggle(postID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows(t, db, &models.PostLike{}, "post_id = ?", postID))

	// bob unliking leaves alice's like alone
	liked, err := svc.Toggle(postID, bob)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(1), countRows(t, db, &models.PostLike{}, "post_id = ?", postID))
}

func TestToggleMissingPost(t *testing.T) {
	db := newTestDB(t)
	bob := seedMember(t, db, "bob")
	svc := NewLikeService(db)

	_, err := svc.Toggle(9999, bob)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleRequiresMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)

	_, err := svc.Toggle(1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
