// internals/features/validation/dossiers/dto/manuel_dto.go
package dto

import (
	"strings"

	model "smartlists_backend/internals/features/validation/dossiers/model"
)

/* =========================
   REQUEST
   ========================= */

// ManuelCreateRequest — ajout d'un manuel à une liste depuis l'espace de
// validation. Pas d'id ni de statut : le serveur les attribue.
type ManuelCreateRequest struct {
	Titre        string  `json:"titre" validate:"required,min=1"`
	Editeur      *string `json:"editeur,omitempty" validate:"omitempty,min=1"`
	AnneeEdition *string `json:"annee_edition,omitempty" validate:"omitempty,max=20"`
	ISBN         *string `json:"isbn,omitempty" validate:"omitempty,max=32"`
	Type         *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Matiere      *string `json:"matiere,omitempty" validate:"omitempty,min=1"`
}

// NiveauCascadeRequest — changement de niveau d'une liste ; la propagation
// aux manuels est faite côté serveur, en transaction.
type NiveauCascadeRequest struct {
	IDNiveau int `json:"id_niveau" validate:"required,gt=0"`
}

/* =========================
   NORMALIZER
   ========================= */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (r *ManuelCreateRequest) Normalize() {
	r.Titre = strings.TrimSpace(r.Titre)
	r.Editeur = trimPtr(r.Editeur)
	r.AnneeEdition = trimPtr(r.AnneeEdition)
	r.ISBN = trimPtr(r.ISBN)
	r.Type = trimPtr(r.Type)
	r.Matiere = trimPtr(r.Matiere)
}

/* =========================
   MAPPER
   ========================= */

// ToModel hérite le niveau de la liste d'accueil ; le statut par défaut
// (À_VÉRIFIER) vient du schéma.
func (r *ManuelCreateRequest) ToModel(idNiveau int) *model.ManuelModel {
	niveau := idNiveau
	return &model.ManuelModel{
		Titre:        r.Titre,
		Editeur:      r.Editeur,
		AnneeEdition: r.AnneeEdition,
		ISBN:         r.ISBN,
		Type:         r.Type,
		Matiere:      r.Matiere,
		IDNiveau:     &niveau,
	}
}
