package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/services"
	"github.com/bluecotton/somboard/utils"
)

// CommentController manages comments and single-level replies.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{comments: services.NewCommentService(db)}
}

// CreateComment appends a comment to a post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "content cannot be empty")
		return
	}

	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	comment := models.Comment{PostID: postID, MemberID: memberID, Content: content}
	id, err := c.comments.InsertComment(&comment)
	if err != nil {
		serviceError(ctx, 50050, err, "failed to create comment")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"comment_id": id})
}

// DeleteComment removes an owned comment and all of its replies.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	commentID, ok := paramID(ctx, "commentId")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40121, "unauthorized")
		return
	}

	cmt, err := c.comments.GetComment(commentID)
	if err != nil {
		serviceError(ctx, 50051, err, "failed to load comment")
		return
	}
	if cmt.MemberID != memberID {
		utils.Error(ctx, http.StatusForbidden, 40320, "you can only delete your own comment")
		return
	}

	if err := c.comments.DeleteComment(commentID); err != nil {
		serviceError(ctx, 50052, err, "failed to delete comment")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// CreateReply appends a reply under a comment.
func (c *CommentController) CreateReply(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40053, "content cannot be empty")
		return
	}

	commentID, ok := paramID(ctx, "commentId")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40122, "unauthorized")
		return
	}

	reply := models.Reply{CommentID: commentID, MemberID: memberID, Content: content}
	id, err := c.comments.InsertReply(&reply)
	if err != nil {
		serviceError(ctx, 50053, err, "failed to create reply")
		return
	}
	utils.Success(ctx, gin.H{"reply_id": id})
}

// DeleteReply removes a single owned reply; siblings and the parent stay.
func (c *CommentController) DeleteReply(ctx *gin.Context) {
	replyID, ok := paramID(ctx, "replyId")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40123, "unauthorized")
		return
	}

	reply, err := c.comments.GetReply(replyID)
	if err != nil {
		serviceError(ctx, 50054, err, "failed to load reply")
		return
	}
	if reply.MemberID != memberID {
		utils.Error(ctx, http.StatusForbidden, 40321, "you can only delete your own reply")
		return
	}

	if err := c.comments.DeleteReply(replyID); err != nil {
		serviceError(ctx, 50055, err, "failed to delete reply")
		return
	}
	utils.Success(ctx, gin.H{"message": "reply deleted"})
}
