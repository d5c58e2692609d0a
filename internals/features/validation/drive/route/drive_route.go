// file: internals/features/validation/drive/route/drive_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/configs"
	"smartlists_backend/internals/features/validation/drive/controller"
	"smartlists_backend/internals/features/validation/drive/storage"
)

func DriveRoutes(api fiber.Router, db *gorm.DB) {
	driveCtrl := &controller.DriveController{
		DB:      db,
		Storage: storage.NewLocalStorage(configs.StorageDir),
	}

	files := api.Group("/drive/files")
	files.Get("/download/:file_id", driveCtrl.Download)
	files.Get("/logs", driveCtrl.Logs)
}
