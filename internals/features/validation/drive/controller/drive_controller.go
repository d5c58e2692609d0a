// file: internals/features/validation/drive/controller/drive_controller.go
package controller

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dossierModel "smartlists_backend/internals/features/validation/dossiers/model"
	"smartlists_backend/internals/features/validation/drive/storage"
	helper "smartlists_backend/internals/helpers"
)

type DriveController struct {
	DB      *gorm.DB
	Storage storage.FileStorage
}

// Download
// GET /api/drive/files/download/:file_id
// Sert le document source pour l'affichage côte à côte. Le type MIME
// vient du journal de traitement ; un fichier jamais journalisé part
// en application/octet-stream.
func (h *DriveController) Download(c *fiber.Ctx) error {
	fileID := c.Params("file_id")
	if fileID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "L'identifiant de fichier est requis")
	}

	mimeType := "application/octet-stream"
	nomFichier := fileID

	var logFichier dossierModel.LogFichierModel
	err := h.DB.Where("id_fichier_drive = ?", fileID).First(&logFichier).Error
	switch {
	case err == nil:
		nomFichier = logFichier.NomFichier
		if logFichier.MimeType != nil && *logFichier.MimeType != "" {
			mimeType = *logFichier.MimeType
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// pas bloquant, on tente quand même le stockage
	default:
		log.Printf("[ERROR] drive download %s: %v", fileID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du téléchargement du fichier")
	}

	reader, size, err := h.Storage.Open(fileID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return helper.JsonError(c, fiber.StatusNotFound,
				fmt.Sprintf("Le fichier '%s' n'a pas été trouvé", fileID))
		}
		log.Printf("[ERROR] drive open %s: %v", fileID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du téléchargement du fichier")
	}

	c.Set(fiber.HeaderContentType, mimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", nomFichier))
	return c.SendStream(reader, int(size))
}

// Logs
// GET /api/drive/files/logs
// Journal de traitement des fichiers, les plus récents en premier.
func (h *DriveController) Logs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := h.DB.Model(&dossierModel.LogFichierModel{}).Count(&total).Error; err != nil {
		log.Printf("[ERROR] drive logs count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des journaux")
	}

	var logs []dossierModel.LogFichierModel
	err := h.DB.
		Order("date_traitement DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&logs).Error
	if err != nil {
		log.Printf("[ERROR] drive logs: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des journaux")
	}

	return helper.JsonOK(c, "Journaux de traitement récupérés", fiber.Map{
		"logs":       logs,
		"pagination": helper.BuildPagination(total, paging.Page, paging.PerPage),
	})
}
