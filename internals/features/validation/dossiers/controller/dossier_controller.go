// file: internals/features/validation/dossiers/controller/dossier_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartlists_backend/internals/constants"
	dto "smartlists_backend/internals/features/validation/dossiers/dto"
	model "smartlists_backend/internals/features/validation/dossiers/model"
	helper "smartlists_backend/internals/helpers"
)

type DossierController struct {
	DB *gorm.DB
}

// ligne plate issue de la jointure listes × références
type listeRow struct {
	IDListe      int     `gorm:"column:id_liste"`
	Statut       string  `gorm:"column:statut"`
	SourceFileID string  `gorm:"column:source_file_id"`
	Effectif     *int    `gorm:"column:effectif"`
	MimeType     *string `gorm:"column:mime_type"`

	IDEcole     int     `gorm:"column:id_ecole"`
	NomEcole    string  `gorm:"column:nom_ecole"`
	Ville       *string `gorm:"column:ville"`
	StatutEcole string  `gorm:"column:statut_ecole"`

	IDAnnee       int    `gorm:"column:id_annee"`
	AnneeScolaire string `gorm:"column:annee_scolaire"`
	StatutAnnee   string `gorm:"column:statut_annee"`

	IDNiveau     int    `gorm:"column:id_niveau"`
	NomNiveau    string `gorm:"column:nom_niveau"`
	StatutNiveau string `gorm:"column:statut_niveau"`
}

// ----------------------------------------------------------
// GET /api/listes/by_file/:source_file_id
// Agrégat complet pour la page de validation : listes (avec
// leurs manuels), index de localisation, nom du fichier.
// ----------------------------------------------------------
func (h *DossierController) GetByFile(c *fiber.Ctx) error {
	fileID := strings.TrimSpace(c.Params("source_file_id"))
	if fileID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "source_file_id requis")
	}

	var rows []listeRow
	err := h.DB.Table("listes_scolaires AS ls").
		Select(`ls.id_liste, ls.statut, ls.source_file_id, ls.effectif,
			e.id_ecole, e.nom_ecole, e.ville, e.statut AS statut_ecole,
			a.id_annee, a.annee_scolaire, a.statut AS statut_annee,
			n.id_niveau, n.nom_niveau, n.statut AS statut_niveau,
			lf.mime_type`).
		Joins("JOIN ecoles AS e ON e.id_ecole = ls.id_ecole").
		Joins("JOIN annees_scolaires AS a ON a.id_annee = ls.id_annee").
		Joins("JOIN niveaux AS n ON n.id_niveau = ls.id_niveau").
		Joins("LEFT JOIN logs_fichiers AS lf ON lf.id_fichier_drive = ls.source_file_id").
		Where("ls.source_file_id = ?", fileID).
		Order("ls.id_liste").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement du dossier")
	}

	// Un dossier contient au moins une liste par construction : zéro
	// liste signale un fichier inconnu ou pas encore traité.
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Aucune liste trouvée pour ce fichier")
	}

	lists := make([]dto.ListeDetailDTO, 0, len(rows))
	for _, r := range rows {
		var manuels []model.ManuelModel
		if err := h.DB.Model(&model.ManuelModel{}).
			Joins("JOIN liste_manuels AS lm ON lm.id_manuel = manuels.id_manuel").
			Where("lm.id_liste = ?", r.IDListe).
			Order("manuels.id_manuel").
			Find(&manuels).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des manuels")
		}
		lists = append(lists, dto.ListeDetailDTO{
			IDListe:       r.IDListe,
			Statut:        r.Statut,
			SourceFileID:  r.SourceFileID,
			Effectif:      r.Effectif,
			MimeType:      r.MimeType,
			IDEcole:       r.IDEcole,
			NomEcole:      r.NomEcole,
			Ville:         r.Ville,
			StatutEcole:   r.StatutEcole,
			IDAnnee:       r.IDAnnee,
			AnneeScolaire: r.AnneeScolaire,
			StatutAnnee:   r.StatutAnnee,
			IDNiveau:      r.IDNiveau,
			NomNiveau:     r.NomNiveau,
			StatutNiveau:  r.StatutNiveau,
			Manuels:       manuels,
		})
	}

	var locations []model.SourceLocationModel
	if err := h.DB.Where("source_file_id = ?", fileID).Find(&locations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des localisations")
	}
	locationsMap := make(map[string]dto.LocationDTO, len(locations))
	for i := range locations {
		locationsMap[locations[i].CleLocation()] = dto.ToLocationDTO(&locations[i])
	}

	var nomFichier string
	var logEntry model.LogFichierModel
	if err := h.DB.Where("id_fichier_drive = ?", fileID).First(&logEntry).Error; err == nil {
		nomFichier = logEntry.NomFichier
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement du fichier")
	}

	return helper.JsonOK(c, "OK", dto.DossierResponse{
		Lists:      lists,
		Locations:  locationsMap,
		NomFichier: nomFichier,
	})
}

// applique les filtres communs (ecole/annee/niveau) de la table des dossiers
func (h *DossierController) dossiersFiltres(c *fiber.Ctx) *gorm.DB {
	base := h.DB.Table("listes_scolaires AS ls").
		Joins("JOIN logs_fichiers AS lf ON lf.id_fichier_drive = ls.source_file_id").
		Joins("JOIN ecoles AS e ON e.id_ecole = ls.id_ecole").
		Joins("JOIN annees_scolaires AS a ON a.id_annee = ls.id_annee").
		Joins("JOIN niveaux AS n ON n.id_niveau = ls.id_niveau")

	if ecole := strings.TrimSpace(c.Query("ecole")); ecole != "" {
		base = base.Where("e.nom_ecole LIKE ?", "%"+ecole+"%")
	}
	if annee := strings.TrimSpace(c.Query("annee")); annee != "" {
		base = base.Where("a.annee_scolaire = ?", annee)
	}
	if niveau := strings.TrimSpace(c.Query("niveau")); niveau != "" {
		base = base.Where(`ls.source_file_id IN (
			SELECT ls2.source_file_id FROM listes_scolaires AS ls2
			JOIN niveaux AS n2 ON n2.id_niveau = ls2.id_niveau
			WHERE n2.nom_niveau = ?)`, niveau)
	}
	return base
}

const exprListesAVerifier = "SUM(CASE WHEN ls.statut NOT IN ('VALIDÉ', 'AUTO_APPROUVÉ') THEN 1 ELSE 0 END)"

func havingPourStatut(q *gorm.DB, statut string) *gorm.DB {
	switch statut {
	case "A_VERIFIER", constants.StatutAVerifier:
		return q.Having(exprListesAVerifier + " > 0")
	case "VALIDE", constants.StatutValide:
		return q.Having(exprListesAVerifier + " = 0")
	}
	return q
}

// ----------------------------------------------------------
// GET /api/listes/dossiers_a_valider
// Table paginée et filtrée des dossiers (un fichier source =
// une ligne, avec le nombre de listes restant à vérifier).
// ----------------------------------------------------------
func (h *DossierController) DossiersAValider(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	statut := strings.TrimSpace(c.Query("statut"))

	grouped := h.dossiersFiltres(c).
		Select(`ls.source_file_id, lf.nom_fichier, e.nom_ecole, a.annee_scolaire,
			lf.date_traitement,
			COUNT(ls.id_liste) AS total_listes,
			` + exprListesAVerifier + ` AS listes_a_verifier`).
		Group("ls.source_file_id, lf.nom_fichier, e.nom_ecole, a.annee_scolaire, lf.date_traitement")
	grouped = havingPourStatut(grouped, statut)

	var total int64
	if err := h.DB.Table("(?) AS dossiers_filtres", grouped.Session(&gorm.Session{})).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des dossiers")
	}

	var page []dto.DossierSummaryDTO
	if err := grouped.
		Order("lf.date_traitement DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Scan(&page).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des dossiers")
	}

	return helper.JsonOK(c, "OK", dto.DossiersPageResponse{
		Data:       page,
		Pagination: helper.BuildPagination(total, paging.Page, paging.PerPage),
	})
}

// ----------------------------------------------------------
// GET /api/listes/dossiers/ids
// Ids de dossiers filtrés, dans l'ordre de la table, pour la
// navigation précédent/suivant.
// ----------------------------------------------------------
func (h *DossierController) DossierIDs(c *fiber.Ctx) error {
	statut := strings.TrimSpace(c.Query("statut"))

	grouped := h.dossiersFiltres(c).
		Select("ls.source_file_id, lf.date_traitement, " + exprListesAVerifier + " AS listes_a_verifier").
		Group("ls.source_file_id, lf.date_traitement")
	grouped = havingPourStatut(grouped, statut)

	var rows []struct {
		SourceFileID string `gorm:"column:source_file_id"`
	}
	if err := grouped.Order("lf.date_traitement DESC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des ids")
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SourceFileID)
	}
	return helper.JsonOK(c, "OK", ids)
}
