package constants

// Types d'entités acceptés par les routes génériques /api/entities/:entityType.
const (
	EntiteEcoles          = "ecoles"
	EntiteAnneesScolaires = "annees_scolaires"
	EntiteNiveaux         = "niveaux"
	EntiteManuels         = "manuels"
	EntiteListesScolaires = "listes_scolaires"
)

// Types d'entités utilisés dans l'index de localisation (clé "{type}_{id}").
// Formes au singulier, distinctes des noms de tables ci-dessus.
const (
	LocEcole         = "ecole"
	LocAnneeScolaire = "annee_scolaire"
	LocNiveau        = "niveau"
	LocManuel        = "manuel"
)
