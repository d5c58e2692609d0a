// file: internals/features/validation/dossiers/controller/liste_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/constants"
	dto "smartlists_backend/internals/features/validation/dossiers/dto"
	model "smartlists_backend/internals/features/validation/dossiers/model"
	helper "smartlists_backend/internals/helpers"
)

type ListeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

// ----------------------------------------------------------
// PUT /api/listes/:list_id/niveau
// Met à jour le niveau d'une liste ET de tous ses manuels,
// en une seule transaction. Le client ne réplique jamais
// cette propagation : il déclenche puis recharge.
// ----------------------------------------------------------
func (h *ListeController) UpdateNiveauCascade(c *fiber.Ctx) error {
	listID, err := c.ParamsInt("list_id")
	if err != nil || listID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "list_id invalide")
	}

	var req dto.NiveauCascadeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Le nouvel id_niveau est requis")
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Le nouvel id_niveau est requis")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var liste model.ListeScolaireModel
		if err := tx.First(&liste, "id_liste = ?", listID).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.ListeScolaireModel{}).
			Where("id_liste = ?", listID).
			Update("id_niveau", req.IDNiveau).Error; err != nil {
			return err
		}

		// re-pointe tous les manuels liés à cette liste
		return tx.Model(&model.ManuelModel{}).
			Where("id_manuel IN (SELECT id_manuel FROM liste_manuels WHERE id_liste = ?)", listID).
			Update("id_niveau", req.IDNiveau).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Liste non trouvée")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour en cascade")
	}

	return helper.JsonOK(c, "Le niveau de la liste et des manuels a été mis à jour", nil)
}

// ----------------------------------------------------------
// POST /api/listes/:list_id/manuels
// Ajoute un manuel à une liste : insertion du manuel (niveau
// hérité de la liste, statut À_VÉRIFIER par défaut) + lien,
// atomiquement.
// ----------------------------------------------------------
func (h *ListeController) AddManuel(c *fiber.Ctx) error {
	listID, err := c.ParamsInt("list_id")
	if err != nil || listID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "list_id invalide")
	}

	var req dto.ManuelCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de la requête invalide")
	}
	req.Normalize()
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var created *model.ManuelModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var liste model.ListeScolaireModel
		if err := tx.First(&liste, "id_liste = ?", listID).Error; err != nil {
			return err
		}

		m := req.ToModel(liste.IDNiveau)
		m.Statut = constants.StatutAVerifier
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		created = m

		lien := model.LienListeManuelModel{IDListe: listID, IDManuel: m.IDManuel}
		return tx.Create(&lien).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Liste non trouvée")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de l'ajout du manuel")
	}

	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Nouveau manuel ajouté", created)
}
