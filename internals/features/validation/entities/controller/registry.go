// file: internals/features/validation/entities/controller/registry.go
package controller

import "smartlists_backend/internals/constants"

// entityConfig décrit une entité révisable pour les routes génériques :
// table, clé primaire et colonnes modifiables par groupe logique.
// L'allowlist évite qu'un payload arbitraire touche les clés ou les
// colonnes de liaison (id_niveau d'une liste passe par la route cascade).
type entityConfig struct {
	Table     string
	PK        string
	Updatable map[string]struct{}
}

func colonnes(cols ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		m[c] = struct{}{}
	}
	return m
}

var entityRegistry = map[string]entityConfig{
	constants.EntiteEcoles: {
		Table:     "ecoles",
		PK:        "id_ecole",
		Updatable: colonnes("nom_ecole", "ville", "statut"),
	},
	constants.EntiteAnneesScolaires: {
		Table:     "annees_scolaires",
		PK:        "id_annee",
		Updatable: colonnes("annee_scolaire", "statut"),
	},
	constants.EntiteNiveaux: {
		Table:     "niveaux",
		PK:        "id_niveau",
		Updatable: colonnes("nom_niveau", "statut"),
	},
	constants.EntiteManuels: {
		Table:     "manuels",
		PK:        "id_manuel",
		Updatable: colonnes("titre", "editeur", "annee_edition", "isbn", "type", "matiere", "statut", "id_article_ref"),
	},
	constants.EntiteListesScolaires: {
		Table:     "listes_scolaires",
		PK:        "id_liste",
		Updatable: colonnes("effectif", "statut"),
	},
}
