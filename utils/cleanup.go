package utils

import (
	"os"
	"time"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/models"
)

// StartImageCleaner launches a background goroutine that periodically deletes
// pre-uploaded images that were never claimed by a post before their deadline.
// It is best-effort and logs failures.
func StartImageCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			var items []models.PostImage
			err := db.Where("post_id = 0 AND expire_at <= ?", time.Now()).
				Limit(100).Find(&items).Error
			if err != nil {
				Sugar.Warnf("image cleaner query failed: %v", err)
				continue
			}
			for _, it := range items {
				if it.FilePath != "" {
					_ = os.Remove(it.FilePath)
				}
				// Remove the row regardless of file deletion outcome
				if err := db.Delete(&models.PostImage{}, it.ID).Error; err != nil {
					Sugar.Warnf("image cleaner delete row failed: %v", err)
				}
			}
		}
	}()
}
