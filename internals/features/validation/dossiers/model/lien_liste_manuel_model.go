package model

// LienListeManuelModel — table de liaison liste ↔ manuel. Les contraintes
// RESTRICT sont déclarées côté ListeScolaireModel et ManuelModel (champs
// Liens) pour qu'elles soient bien émises sur cette table : un manuel
// encore lié à une liste ne peut pas être supprimé (le contrôleur traduit
// la violation en 409).
type LienListeManuelModel struct {
	IDListe  int `gorm:"primaryKey;column:id_liste" json:"id_liste"`
	IDManuel int `gorm:"primaryKey;column:id_manuel" json:"id_manuel"`
}

func (LienListeManuelModel) TableName() string { return "liste_manuels" }
