package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluecotton/somboard/models"
)

func TestReportPost(t *testing.T) {
	db := newTestDB(t)
	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	somID := seedSom(t, db, "general")
	seedMembership(t, db, somID, alice)
	postID := seedPost(t, db, alice, somID, "reported")

	svc := NewReportService(db)
	require.NoError(t, svc.Report(postID, bob, "spam"))

	// second report by the same member hits the unique pair
	assert.ErrorIs(t, svc.Report(postID, bob, "spam again"), ErrConflict)
	assert.Equal(t, int64(1), countRows(t, db, &models.PostReport{}, "post_id = ?", postID))

	// a different member may still report
	require.NoError(t, svc.Report(postID, alice, "self report"))
	assert.Equal(t, int64(2), countRows(t, db, &models.PostReport{}, "post_id = ?", postID))
}

func TestReportMissingPost(t *testing.T) {
	db := newTestDB(t)
	bob := seedMember(t, db, "bob")
	svc := NewReportService(db)
	assert.ErrorIs(t, svc.Report(9999, bob, "nothing there"), ErrNotFound)
}
