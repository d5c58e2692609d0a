// file: internals/features/validation/entities/route/entity_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/features/validation/entities/controller"
)

func EntityRoutes(api fiber.Router, db *gorm.DB) {
	entityCtrl := &controller.EntityController{DB: db}

	entities := api.Group("/entities")

	// Les listes déroulantes passent avant les routes génériques :
	// Fiber matcherait sinon "annees_scolaires" comme :entity_type.
	entities.Get("/annees_scolaires", entityCtrl.OptionsAnneesScolaires)
	entities.Get("/niveaux", entityCtrl.OptionsNiveaux)

	// CRUD générique piloté par le registre d'entités
	entities.Put("/:entity_type/:entity_id", entityCtrl.Update)
	entities.Post("/:entity_type/:entity_id/validate", entityCtrl.Validate)
	entities.Delete("/:entity_type/:entity_id", entityCtrl.Delete)
}
