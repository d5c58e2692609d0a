// file: internals/features/validation/referentiel/route/referentiel_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/features/validation/referentiel/controller"
)

func ReferentielRoutes(api fiber.Router, db *gorm.DB) {
	refCtrl := &controller.ReferentielController{DB: db}

	api.Get("/referentiel/search", refCtrl.SearchArticles)
	api.Get("/search/manuels", refCtrl.SuggestManuels)
}
