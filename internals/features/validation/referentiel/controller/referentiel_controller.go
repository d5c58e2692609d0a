// file: internals/features/validation/referentiel/controller/referentiel_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dossierModel "smartlists_backend/internals/features/validation/dossiers/model"
	"smartlists_backend/internals/features/validation/referentiel/model"
	helper "smartlists_backend/internals/helpers"
)

type ReferentielController struct {
	DB *gorm.DB
}

// SearchArticles
// GET /api/referentiel/search?q=...
// Recherche plein-texte simple sur le référentiel interne. En dessous
// de 3 caractères on répond une liste vide sans toucher la base : la
// barre de recherche du front interroge à chaque frappe.
func (h *ReferentielController) SearchArticles(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 3 {
		return helper.JsonOK(c, "Résultats de la recherche", []model.ArticleModel{})
	}

	motif := "%" + q + "%"
	var articles []model.ArticleModel
	err := h.DB.
		Where("designation LIKE ? OR reference LIKE ? OR code_barre LIKE ?", motif, motif, motif).
		Order("designation").
		Limit(20).
		Find(&articles).Error
	if err != nil {
		log.Printf("[ERROR] referentiel search %q: %v", q, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la recherche dans le référentiel")
	}

	return helper.JsonOK(c, "Résultats de la recherche", articles)
}

// SuggestManuels
// GET /api/search/manuels?q=...
// Suggestions de manuels déjà connus (titre ou ISBN), utilisées pour
// l'autocomplétion lors de l'ajout manuel d'une ligne.
func (h *ReferentielController) SuggestManuels(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 3 {
		return helper.JsonOK(c, "Suggestions de manuels", []dossierModel.ManuelModel{})
	}

	motif := "%" + q + "%"
	var manuels []dossierModel.ManuelModel
	err := h.DB.
		Where("titre LIKE ? OR isbn LIKE ?", motif, motif).
		Order("titre").
		Limit(50).
		Find(&manuels).Error
	if err != nil {
		log.Printf("[ERROR] suggest manuels %q: %v", q, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la recherche de manuels")
	}

	return helper.JsonOK(c, "Suggestions de manuels", manuels)
}
