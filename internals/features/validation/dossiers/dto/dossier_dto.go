// internals/features/validation/dossiers/dto/dossier_dto.go
package dto

import (
	"gorm.io/datatypes"

	model "smartlists_backend/internals/features/validation/dossiers/model"

	helper "smartlists_backend/internals/helpers"
)

/* =========================
   RESPONSE — agrégat dossier
   ========================= */

// LocationDTO — une entrée de l'index de localisation, clé "{type}_{id}".
type LocationDTO struct {
	EntiteType      string         `json:"entite_type"`
	EntiteID        int            `json:"entite_id"`
	PageNumber      int            `json:"page_number"`
	CoordonneesJSON datatypes.JSON `json:"coordonnees_json"`
}

// ListeDetailDTO — une liste avec ses références jointes et le statut
// propre de chaque référence (école, année, niveau).
type ListeDetailDTO struct {
	IDListe      int     `json:"id_liste"`
	Statut       string  `json:"statut"`
	SourceFileID string  `json:"source_file_id"`
	Effectif     *int    `json:"effectif,omitempty"`
	MimeType     *string `json:"mime_type,omitempty"`

	IDEcole     int     `json:"id_ecole"`
	NomEcole    string  `json:"nom_ecole"`
	Ville       *string `json:"ville,omitempty"`
	StatutEcole string  `json:"statut_ecole"`

	IDAnnee       int    `json:"id_annee"`
	AnneeScolaire string `json:"annee_scolaire"`
	StatutAnnee   string `json:"statut_annee"`

	IDNiveau     int    `json:"id_niveau"`
	NomNiveau    string `json:"nom_niveau"`
	StatutNiveau string `json:"statut_niveau"`

	Manuels []model.ManuelModel `json:"manuels"`
}

// DossierResponse — tout ce que la page de validation consomme en un
// seul fetch : listes + index de localisation + nom du fichier.
type DossierResponse struct {
	Lists      []ListeDetailDTO       `json:"lists"`
	Locations  map[string]LocationDTO `json:"locations"`
	NomFichier string                 `json:"nom_fichier"`
}

func ToLocationDTO(m *model.SourceLocationModel) LocationDTO {
	return LocationDTO{
		EntiteType:      m.EntiteType,
		EntiteID:        m.EntiteID,
		PageNumber:      m.PageNumber,
		CoordonneesJSON: m.CoordonneesJSON,
	}
}

/* =========================
   RESPONSE — table des dossiers
   ========================= */

type DossierSummaryDTO struct {
	SourceFileID    string `json:"source_file_id"`
	NomFichier      string `json:"nom_fichier"`
	NomEcole        string `json:"nom_ecole"`
	AnneeScolaire   string `json:"annee_scolaire"`
	TotalListes     int    `json:"total_listes"`
	ListesAVerifier int    `json:"listes_a_verifier"`
}

type DossiersPageResponse struct {
	Data       []DossierSummaryDTO `json:"data"`
	Pagination helper.Pagination   `json:"pagination"`
}
