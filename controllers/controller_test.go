package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/middleware"
	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	_ = utils.InitLogger(config.AppConfig{LogLevel: "error"})
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Member{}, &models.Som{}, &models.SomMember{},
		&models.Post{}, &models.PostImage{}, &models.Comment{}, &models.Reply{},
		&models.PostLike{}, &models.RecentView{}, &models.PostReport{}, &models.PostDraft{},
	))
	return db
}

// newTestRouter wires the board routes with a stub auth that acts as memberID.
func newTestRouter(db *gorm.DB, memberID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		if memberID != 0 {
			ctx.Set(middleware.ContextMemberIDKey, memberID)
		}
		ctx.Next()
	})

	postController := NewPostController(db)
	commentController := NewCommentController(db)
	engagementController := NewEngagementController(db)

	r.GET("/posts", postController.ListPosts)
	r.GET("/posts/:id", postController.GetPost)
	r.POST("/posts", postController.CreatePost)
	r.PUT("/posts/:id", postController.UpdatePost)
	r.DELETE("/posts/:id", postController.DeletePost)
	r.POST("/posts/:id/comments", commentController.CreateComment)
	r.POST("/posts/:id/like", engagementController.ToggleLike)
	return r
}

func seedBoard(t *testing.T, db *gorm.DB) (memberID, somID uint) {
	t.Helper()
	m := models.Member{Username: "alice", PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(&m).Error)
	s := models.Som{Name: "general"}
	require.NoError(t, db.Create(&s).Error)
	require.NoError(t, db.Create(&models.SomMember{SomID: s.ID, MemberID: m.ID}).Error)
	return m.ID, s.ID
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.JSONResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestCreateAndFetchPost(t *testing.T) {
	db := newTestDB(t)
	memberID, somID := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, envelope := doJSON(t, r, http.MethodPost, "/posts", gin.H{
		"som_id":  somID,
		"title":   "hello",
		"content": "board",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, envelope.Code)

	data := envelope.Data.(map[string]interface{})
	postID := uint(data["post_id"].(float64))
	require.NotZero(t, postID)

	w, envelope = doJSON(t, r, http.MethodGet, "/posts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	post := envelope.Data.(map[string]interface{})["post"].(map[string]interface{})
	assert.Equal(t, "hello", post["title"])
	assert.Equal(t, float64(1), post["view_count"])
	assert.Equal(t, "alice", post["author"])
}

func TestCreatePostRejectsBadPayload(t *testing.T) {
	db := newTestDB(t)
	memberID, _ := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, envelope := doJSON(t, r, http.MethodPost, "/posts", gin.H{"title": "no som"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEqual(t, 0, envelope.Code)
}

func TestCreatePostUnknownSomIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	memberID, _ := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, _ := doJSON(t, r, http.MethodPost, "/posts", gin.H{
		"som_id":  999,
		"title":   "t",
		"content": "c",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingPostIsNotFound(t *testing.T) {
	db := newTestDB(t)
	memberID, _ := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, _ := doJSON(t, r, http.MethodGet, "/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadPathParamIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	memberID, _ := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, _ := doJSON(t, r, http.MethodGet, "/posts/garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	db := newTestDB(t)
	memberID, somID := seedBoard(t, db)

	owner := newTestRouter(db, memberID)
	w, envelope := doJSON(t, owner, http.MethodPost, "/posts", gin.H{
		"som_id":  somID,
		"title":   "mine",
		"content": "c",
	})
	require.Equal(t, http.StatusOK, w.Code)
	_ = envelope

	intruder := models.Member{Username: "mallory", PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(&intruder).Error)
	other := newTestRouter(db, intruder.ID)

	w, _ = doJSON(t, other, http.MethodPut, "/posts/1", gin.H{
		"som_id":  somID,
		"title":   "stolen",
		"content": "c",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, other, http.MethodDelete, "/posts/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleLikeEndpoint(t *testing.T) {
	db := newTestDB(t)
	memberID, somID := seedBoard(t, db)
	r := newTestRouter(db, memberID)

	w, _ := doJSON(t, r, http.MethodPost, "/posts", gin.H{
		"som_id":  somID,
		"title":   "likeable",
		"content": "c",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, envelope := doJSON(t, r, http.MethodPost, "/posts/1/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope.Data.(map[string]interface{})["liked"])

	w, envelope = doJSON(t, r, http.MethodPost, "/posts/1/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, envelope.Data.(map[string]interface{})["liked"])
}

func TestUnauthenticatedWriteIsRejected(t *testing.T) {
	db := newTestDB(t)
	_, somID := seedBoard(t, db)
	anonymous := newTestRouter(db, 0)

	w, _ := doJSON(t, anonymous, http.MethodPost, "/posts", gin.H{
		"som_id":  somID,
		"title":   "t",
		"content": "c",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
