package main

import (
	"time"

	"github.com/bluecotton/somboard/config"
	"github.com/bluecotton/somboard/models"
	"github.com/bluecotton/somboard/routes"
	"github.com/bluecotton/somboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Member{},
		&models.Som{},
		&models.SomMember{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.Reply{},
		&models.PostLike{},
		&models.RecentView{},
		&models.PostReport{},
		&models.PostDraft{},
		&models.PageView{},
	)

	r := routes.SetupRouter(db)

	// Purge pre-uploaded images that no post ever claimed (best-effort)
	utils.StartImageCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
