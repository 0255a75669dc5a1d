package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/utils"
)

// UploadController handles image uploads. Images are uploaded before the post
// they belong to exists: each upload is stored as an unclaimed PostImage row
// that creation later claims by URL, and the cleaner purges rows that were
// never claimed before their deadline.
type UploadController struct {
	db *gorm.DB
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

// UploadImage stores a multipart image and records it for later claiming.
func (u *UploadController) UploadImage(ctx *gin.Context) {
	memberID, ok := getMemberID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40140, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "no file uploaded")
		return
	}
	defer file.Close()

	const maxSize = 10 * 1024 * 1024
	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40061, "file size exceeds 10MB")
		return
	}

	cfg := config.Get()
	now := time.Now()
	baseDir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to create upload directory")
		return
	}

	ext := filepath.Ext(filepath.Base(header.Filename))
	safeName := fmt.Sprintf("%d_%s%s", memberID, uuid.NewString(), ext)
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to save file")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil || written > maxSize {
		_ = out.Close()
		_ = os.Remove(dstPath)
		if written > maxSize {
			utils.Error(ctx, http.StatusBadRequest, 40061, "file size exceeds 10MB")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to write file")
		}
		return
	}

	relURL := fmt.Sprintf("/static/uploads/%s/%s/%s/%s", now.Format("2006"), now.Format("01"), now.Format("02"), safeName)
	absPath, _ := filepath.Abs(dstPath)

	image := models.PostImage{
		URL:      relURL,
		FilePath: absPath,
		ExpireAt: now.Add(time.Duration(cfg.UploadClaimMinutes) * time.Minute),
	}
	if err := u.db.Create(&image).Error; err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to record upload")
		return
	}

	utils.Success(ctx, gin.H{"url": relURL})
}
