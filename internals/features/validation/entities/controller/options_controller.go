// file: internals/features/validation/entities/controller/options_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	dossierModel "smartlists_backend/internals/features/validation/dossiers/model"
	helper "smartlists_backend/internals/helpers"
)

// OptionsAnneesScolaires
// GET /api/entities/annees_scolaires
// Alimente la liste déroulante des années, la plus récente en premier.
func (h *EntityController) OptionsAnneesScolaires(c *fiber.Ctx) error {
	var annees []dossierModel.AnneeScolaireModel
	if err := h.DB.Order("annee_scolaire DESC").Find(&annees).Error; err != nil {
		log.Printf("[ERROR] options annees_scolaires: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des années scolaires")
	}
	return helper.JsonOK(c, "Années scolaires récupérées", annees)
}

// OptionsNiveaux
// GET /api/entities/niveaux
// Les niveaux sortent dans l'ordre d'insertion du référentiel (PS → Terminale).
func (h *EntityController) OptionsNiveaux(c *fiber.Ctx) error {
	var niveaux []dossierModel.NiveauModel
	if err := h.DB.Order("id_niveau").Find(&niveaux).Error; err != nil {
		log.Printf("[ERROR] options niveaux: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des niveaux")
	}
	return helper.JsonOK(c, "Niveaux récupérés", niveaux)
}
