package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/services"
	"github.com/bluecotton/somboard/utils"
)

// EngagementController handles the like toggle and post reports.
type EngagementController struct {
	likes   *services.LikeService
	reports *services.ReportService
}

// NewEngagementController creates a new EngagementController instance.
func NewEngagementController(db *gorm.DB) *EngagementController {
	return &EngagementController{
		likes:   services.NewLikeService(db),
		reports: services.NewReportService(db),
	}
}

// ToggleLike flips the acting member's like on a post and reports the
// resulting state.
func (e *EngagementController) ToggleLike(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	liked, err := e.likes.Toggle(postID, memberID)
	if err != nil {
		serviceError(ctx, 50060, err, "failed to toggle like")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"liked": liked})
}

// ReportPost files a report against a post. Reporting twice is answered as
// success so clients need no special handling for the duplicate case.
func (e *EngagementController) ReportPost(ctx *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = ctx.ShouldBindJSON(&req)

	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40131, "unauthorized")
		return
	}

	err := e.reports.Report(postID, memberID, utils.Sanitize(req.Reason))
	if err != nil && !errors.Is(err, services.ErrConflict) {
		serviceError(ctx, 50061, err, "failed to report post")
		return
	}
	utils.Success(ctx, gin.H{"message": "report recorded"})
}
