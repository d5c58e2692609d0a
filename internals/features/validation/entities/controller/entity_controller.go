// file: internals/features/validation/entities/controller/entity_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/constants"
	helper "smartlists_backend/internals/helpers"
)

type EntityController struct {
	DB *gorm.DB
}

func (h *EntityController) config(c *fiber.Ctx) (entityConfig, int, error) {
	entityType := c.Params("entity_type")
	cfg, ok := entityRegistry[entityType]
	if !ok {
		return entityConfig{}, 0, fmt.Errorf("Le type d'entité '%s' est invalide", entityType)
	}
	entityID, err := c.ParamsInt("entity_id")
	if err != nil || entityID <= 0 {
		return entityConfig{}, 0, fmt.Errorf("L'ID d'entité est invalide")
	}
	return cfg, entityID, nil
}

func (h *EntityController) existe(cfg entityConfig, entityID int) (bool, error) {
	var n int64
	err := h.DB.Table(cfg.Table).Where(cfg.PK+" = ?", entityID).Count(&n).Error
	return n > 0, err
}

// ----------------------------------------------------------
// PUT /api/entities/:entity_type/:entity_id
// Mise à jour partielle par groupe logique, restreinte à
// l'allowlist de l'entité. Jamais de PATCH champ par champ.
// ----------------------------------------------------------
func (h *EntityController) Update(c *fiber.Ctx) error {
	cfg, entityID, err := h.config(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil || len(payload) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de la requête vide")
	}

	updates := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if _, ok := cfg.Updatable[k]; ok {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Aucun champ valide à mettre à jour")
	}

	ok, err := h.existe(cfg, entityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound,
			fmt.Sprintf("L'entité '%s' avec l'ID %d n'a pas été trouvée", c.Params("entity_type"), entityID))
	}

	if err := h.DB.Table(cfg.Table).Where(cfg.PK+" = ?", entityID).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update %s/%d: %v", cfg.Table, entityID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour")
	}

	return helper.JsonOK(c, "Mise à jour réussie", nil)
}

// ----------------------------------------------------------
// POST /api/entities/:entity_type/:entity_id/validate
// Transition du statut vers VALIDÉ. Une entité déjà validée
// répond 409 : le client le présente comme une information,
// pas comme une erreur.
// ----------------------------------------------------------
func (h *EntityController) Validate(c *fiber.Ctx) error {
	cfg, entityID, err := h.config(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row struct {
		Statut string `gorm:"column:statut"`
	}
	res := h.DB.Table(cfg.Table).Select("statut").Where(cfg.PK+" = ?", entityID).Take(&row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound,
				fmt.Sprintf("L'entité '%s' avec l'ID %d n'a pas été trouvée", c.Params("entity_type"), entityID))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la validation")
	}

	if row.Statut == constants.StatutValide {
		return helper.JsonError(c, fiber.StatusConflict, "Cette entité est déjà validée")
	}

	if err := h.DB.Table(cfg.Table).Where(cfg.PK+" = ?", entityID).
		Update("statut", constants.StatutValide).Error; err != nil {
		log.Printf("[ERROR] validate %s/%d: %v", cfg.Table, entityID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la validation")
	}

	return helper.JsonOK(c, "Validation réussie", nil)
}

// ----------------------------------------------------------
// DELETE /api/entities/:entity_type/:entity_id
// Suppression dure. Une violation de clé étrangère (entité
// encore référencée) devient un 409 bloquant.
// ----------------------------------------------------------
func (h *EntityController) Delete(c *fiber.Ctx) error {
	cfg, entityID, err := h.config(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ok, err := h.existe(cfg, entityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound,
			fmt.Sprintf("L'entité '%s' avec l'ID %d n'a pas été trouvée", c.Params("entity_type"), entityID))
	}

	if err := h.DB.Exec("DELETE FROM "+cfg.Table+" WHERE "+cfg.PK+" = ?", entityID).Error; err != nil {
		if helper.IsFKViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict,
				"Cet élément ne peut pas être supprimé car il est utilisé par d'autres données")
		}
		log.Printf("[ERROR] delete %s/%d: %v", cfg.Table, entityID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression")
	}

	return helper.JsonOK(c, "Suppression réussie", nil)
}
