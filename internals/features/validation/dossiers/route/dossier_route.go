// file: internals/features/validation/dossiers/route/dossier_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/features/validation/dossiers/controller"
)

func DossierRoutes(api fiber.Router, db *gorm.DB) {
	dossierCtrl := &controller.DossierController{DB: db}
	listeCtrl := &controller.ListeController{DB: db, Validator: validator.New()}

	// =========================
	// 📂 DOSSIERS DE VALIDATION
	// =========================

	// Agrégat complet d'un fichier traité (listes + manuels + locations)
	api.Get("/listes/by_file/:source_file_id", dossierCtrl.GetByFile)

	// File d'attente des dossiers, filtrable et paginée
	api.Get("/listes/dossiers_a_valider", dossierCtrl.DossiersAValider)
	api.Get("/listes/dossiers/ids", dossierCtrl.DossierIDs)

	// Opérations au niveau d'une liste
	api.Put("/listes/:list_id/niveau", listeCtrl.UpdateNiveauCascade)
	api.Post("/listes/:list_id/manuels", listeCtrl.AddManuel)
}
