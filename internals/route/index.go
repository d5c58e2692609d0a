// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	driveRoute "smartlists_backend/internals/features/validation/drive/route"
	dossierRoute "smartlists_backend/internals/features/validation/dossiers/route"
	entityRoute "smartlists_backend/internals/features/validation/entities/route"
	referentielRoute "smartlists_backend/internals/features/validation/referentiel/route"
	"smartlists_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// Tout le back-office passe derrière le garde de session.
	api := app.Group("/api", auth.SessionGuard())

	log.Println("[INFO] Setting up DossierRoutes...")
	dossierRoute.DossierRoutes(api, db)

	log.Println("[INFO] Setting up EntityRoutes...")
	entityRoute.EntityRoutes(api, db)

	log.Println("[INFO] Setting up ReferentielRoutes...")
	referentielRoute.ReferentielRoutes(api, db)

	log.Println("[INFO] Setting up DriveRoutes...")
	driveRoute.DriveRoutes(api, db)
}
