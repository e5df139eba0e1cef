// @title MedBlueprint API
// @version 1.0
// @description Dịch vụ sinh ma trận đề thi y khoa (test blueprint) bằng AI.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"medblueprint_backend/internal/app"
	"medblueprint_backend/internal/config"
	"medblueprint_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "chỉ chạy migrate rồi thoát")
	migrate := flag.Bool("migrate", false, "buộc chạy migrate khi khởi động")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	application.Run()
}
