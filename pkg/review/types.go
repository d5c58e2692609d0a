// file: pkg/review/types.go
//
// Package review porte le flux de validation côté client : modèle de
// statut, index de localisation, client API, chargeur d'agrégat et
// espace de travail du relecteur.
package review

import (
	"encoding/json"
	"strconv"

	"github.com/bytedance/sonic"

	"smartlists_backend/pkg/overlay"
)

/* =========================
   Statut de validation
   ========================= */

type Statut string

const (
	StatutAVerifier    Statut = "À_VÉRIFIER"
	StatutValide       Statut = "VALIDÉ"
	StatutAutoApprouve Statut = "AUTO_APPROUVÉ"
)

func (s Statut) EstValide() bool {
	return s == StatutValide || s == StatutAutoApprouve
}

// Badge — libellé humain du badge de statut.
func (s Statut) Badge() string {
	switch s {
	case StatutValide:
		return "Validé"
	case StatutAutoApprouve:
		return "Auto-approuvé"
	default:
		return "À vérifier"
	}
}

/* =========================
   Types d'entité (API REST)
   ========================= */

const (
	TypeEcoles         = "ecoles"
	TypeAnneesScolaire = "annees_scolaires"
	TypeNiveaux        = "niveaux"
	TypeManuels        = "manuels"
	TypeListes         = "listes_scolaires"
)

// Clés de l'index de localisation : type au singulier.
const (
	LocEcole         = "ecole"
	LocAnneeScolaire = "annee_scolaire"
	LocNiveau        = "niveau"
	LocManuel        = "manuel"
)

/* =========================
   Agrégat dossier
   ========================= */

// Manuel reflète une ligne de la table des manuels telle que servie
// par l'agrégat.
type Manuel struct {
	IDManuel     int     `json:"id_manuel"`
	Titre        string  `json:"titre"`
	Editeur      *string `json:"editeur,omitempty"`
	AnneeEdition *string `json:"annee_edition,omitempty"`
	ISBN         *string `json:"isbn,omitempty"`
	Type         *string `json:"type,omitempty"`
	Matiere      *string `json:"matiere,omitempty"`
	IDNiveau     *int    `json:"id_niveau,omitempty"`
	IDArticleRef *int    `json:"id_article_ref,omitempty"`
	Statut       Statut  `json:"statut"`
}

// Liste est une liste scolaire avec ses références jointes, chacune
// portant son propre statut.
type Liste struct {
	IDListe      int     `json:"id_liste"`
	Statut       Statut  `json:"statut"`
	SourceFileID string  `json:"source_file_id"`
	Effectif     *int    `json:"effectif,omitempty"`

	IDEcole     int     `json:"id_ecole"`
	NomEcole    string  `json:"nom_ecole"`
	Ville       *string `json:"ville,omitempty"`
	StatutEcole Statut  `json:"statut_ecole"`

	IDAnnee       int    `json:"id_annee"`
	AnneeScolaire string `json:"annee_scolaire"`
	StatutAnnee   Statut `json:"statut_annee"`

	IDNiveau     int    `json:"id_niveau"`
	NomNiveau    string `json:"nom_niveau"`
	StatutNiveau Statut `json:"statut_niveau"`

	Manuels []Manuel `json:"manuels"`
}

// LocationRecord localise une entité sur le document source.
type LocationRecord struct {
	EntiteType      string          `json:"entite_type"`
	EntiteID        int             `json:"entite_id"`
	PageNumber      int             `json:"page_number"`
	CoordonneesJSON json.RawMessage `json:"coordonnees_json"`
}

// Overlay décode la boîte englobante stockée et la projette en
// rectangle de surbrillance. ok=false si les coordonnées sont
// malformées : la fiche reste éditable sans surbrillance.
func (r LocationRecord) Overlay() (overlay.Overlay, bool) {
	var enc struct {
		BoundingBox []overlay.Point `json:"bounding_box"`
	}
	if err := sonic.Unmarshal(r.CoordonneesJSON, &enc); err != nil {
		return overlay.Overlay{}, false
	}
	return overlay.FromRecord(overlay.Record{
		PageNumber:  r.PageNumber,
		BoundingBox: enc.BoundingBox,
	})
}

// LocationIndex — index par clé "{type}_{id}", immuable entre deux
// rechargements de l'agrégat.
type LocationIndex map[string]LocationRecord

func CleLocation(entiteType string, entiteID int) string {
	return entiteType + "_" + strconv.Itoa(entiteID)
}

func (idx LocationIndex) Lookup(entiteType string, entiteID int) (LocationRecord, bool) {
	rec, ok := idx[CleLocation(entiteType, entiteID)]
	return rec, ok
}

// DossierData est l'agrégat complet d'un fichier source.
type DossierData struct {
	Lists      []Liste       `json:"lists"`
	Locations  LocationIndex `json:"locations"`
	NomFichier string        `json:"nom_fichier"`
}

// Article — une entrée du référentiel produit.
type Article struct {
	IDArticle   int    `json:"id_article"`
	Reference   string `json:"reference"`
	Designation string `json:"designation"`
	CodeBarre   string `json:"code_barre"`
}

// ManuelCreate — charge utile d'ajout d'un manuel à une liste.
// Ni id ni statut : le backend les attribue.
type ManuelCreate struct {
	Titre        string  `json:"titre"`
	Editeur      *string `json:"editeur,omitempty"`
	AnneeEdition *string `json:"annee_edition,omitempty"`
	ISBN         *string `json:"isbn,omitempty"`
	Type         *string `json:"type,omitempty"`
	Matiere      *string `json:"matiere,omitempty"`
}
