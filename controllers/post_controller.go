package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/services"
	"github.com/bluecotton/somboard/utils"
)

// PostController exposes the post lifecycle, detail and listing operations.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{posts: services.NewPostService(db)}
}

// Service exposes the underlying PostService for wiring (quota policy).
func (p *PostController) Service() *services.PostService {
	return p.posts
}

// CreatePost creates a post in one of the member's soms. The first image URL
// becomes the thumbnail; with no images the system default is attached.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		SomID     uint     `json:"som_id" binding:"required"`
		Title     string   `json:"title" binding:"required,min=1"`
		Content   string   `json:"content" binding:"required"`
		ImageURLs []string `json:"image_urls"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)

	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		MemberID: memberID,
		SomID:    req.SomID,
		Title:    title,
		Content:  content,
	}

	id, err := p.posts.Create(&post, req.ImageURLs)
	if err != nil {
		serviceError(ctx, 50020, err, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"post_id": id})
}

// ListPosts returns post summaries, optionally filtered to one som.
func (p *PostController) ListPosts(ctx *gin.Context) {
	order := strings.TrimSpace(ctx.Query("order"))
	if order == "" {
		order = services.OrderLatest
	}

	var somID *uint
	if raw := strings.TrimSpace(ctx.Query("som_id")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid som id")
			return
		}
		u := uint(v)
		somID = &u
	}

	memberID, _ := getMemberID(ctx)

	// Anonymous lists carry no per-member like marks and can be cached whole.
	cacheKey := ""
	if memberID == 0 {
		som := ""
		if somID != nil {
			som = strconv.Itoa(int(*somID))
		}
		cacheKey = fmt.Sprintf("cache:posts:list:som=%s:order=%s", som, order)
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	items, err := p.posts.List(somID, order, memberID)
	if err != nil {
		serviceError(ctx, 50021, err, "failed to list posts")
		return
	}

	payload := gin.H{"items": items}
	if cacheKey != "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// GetPost assembles the detail view. Every call counts as a view for the
// acting member, so this endpoint is never served from cache.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	detail, err := p.posts.GetDetail(postID, memberID)
	if err != nil {
		serviceError(ctx, 50023, err, "failed to load post")
		return
	}
	utils.Success(ctx, gin.H{"post": detail})
}

// GetPostForUpdate returns the post plus images for the edit form.
func (p *PostController) GetPostForUpdate(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	out, err := p.posts.GetForUpdate(postID)
	if err != nil {
		serviceError(ctx, 50024, err, "failed to load post")
		return
	}
	if out.MemberID != memberID {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only edit your own posts")
		return
	}
	utils.Success(ctx, gin.H{"post": out})
}

// UpdatePost overwrites the mutable fields of an owned post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		SomID   uint   `json:"som_id" binding:"required"`
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	current, err := p.posts.GetForUpdate(postID)
	if err != nil {
		serviceError(ctx, 50025, err, "failed to load post")
		return
	}
	if current.MemberID != memberID {
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only update your own posts")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "title cannot be empty")
		return
	}

	post := models.Post{ID: postID, SomID: req.SomID, Title: title, Content: utils.Sanitize(req.Content)}
	if err := p.posts.Modify(&post); err != nil {
		serviceError(ctx, 50026, err, "failed to update post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"message": "post updated"})
}

// DeletePost withdraws an owned post with its full dependent cascade.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	current, err := p.posts.GetForUpdate(postID)
	if err != nil {
		serviceError(ctx, 50027, err, "failed to load post")
		return
	}
	if current.MemberID != memberID {
		utils.Error(ctx, http.StatusForbidden, 40303, "you can only delete your own posts")
		return
	}

	if err := p.posts.Withdraw(postID); err != nil {
		serviceError(ctx, 50028, err, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// RegisterDraft saves a draft outside the creation pipeline.
func (p *PostController) RegisterDraft(ctx *gin.Context) {
	var req struct {
		SomID   uint   `json:"som_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40026, "invalid request payload")
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40114, "unauthorized")
		return
	}

	draft := models.PostDraft{
		MemberID: memberID,
		SomID:    req.SomID,
		Title:    utils.Sanitize(strings.TrimSpace(req.Title)),
		Content:  utils.Sanitize(req.Content),
	}
	if err := p.posts.RegisterDraft(&draft); err != nil {
		serviceError(ctx, 50029, err, "failed to save draft")
		return
	}
	utils.Success(ctx, gin.H{"draft_id": draft.ID})
}

// RecentViews lists the acting member's recently viewed posts.
func (p *PostController) RecentViews(ctx *gin.Context) {
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40115, "unauthorized")
		return
	}
	items, err := p.posts.RecentViews(memberID)
	if err != nil {
		serviceError(ctx, 50030, err, "failed to list recent views")
		return
	}
	utils.Success(ctx, gin.H{"items": items})
}

// ListSoms returns all soms.
func (p *PostController) ListSoms(ctx *gin.Context) {
	soms, err := p.posts.ListSoms()
	if err != nil {
		serviceError(ctx, 50031, err, "failed to list soms")
		return
	}
	utils.Success(ctx, gin.H{"items": soms})
}

// JoinedSoms returns the soms the acting member belongs to.
func (p *PostController) JoinedSoms(ctx *gin.Context) {
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40116, "unauthorized")
		return
	}
	soms, err := p.posts.JoinedSoms(memberID)
	if err != nil {
		serviceError(ctx, 50032, err, "failed to list joined soms")
		return
	}
	utils.Success(ctx, gin.H{"items": soms})
}

// JoinSom adds the acting member to a som.
func (p *PostController) JoinSom(ctx *gin.Context) {
	somID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40117, "unauthorized")
		return
	}
	if err := p.posts.JoinSom(somID, memberID); err != nil {
		serviceError(ctx, 50033, err, "failed to join som")
		return
	}
	utils.Success(ctx, gin.H{"message": "joined"})
}

// paramID parses a positive integer path parameter, answering 400 on garbage.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}
