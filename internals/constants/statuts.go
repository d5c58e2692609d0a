package constants

// Statuts de validation partagés par toutes les entités révisables
// (écoles, années scolaires, niveaux, manuels, listes scolaires).
const (
	StatutAVerifier    = "À_VÉRIFIER"
	StatutValide       = "VALIDÉ"
	StatutAutoApprouve = "AUTO_APPROUVÉ"
)

// Statuts de traitement des fichiers sources (logs_fichiers).
const (
	FichierTraite           = "TRAITÉ"
	FichierErreurExtraction = "ERREUR_EXTRACTION"
)

// EstValide: VALIDÉ et AUTO_APPROUVÉ comptent tous deux comme approuvés.
func EstValide(statut string) bool {
	return statut == StatutValide || statut == StatutAutoApprouve
}
