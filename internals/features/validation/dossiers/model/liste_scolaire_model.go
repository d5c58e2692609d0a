// file: internals/features/validation/dossiers/model/liste_scolaire_model.go
package model

// ListeScolaireModel — une liste de fournitures pour un niveau donné,
// extraite d'un fichier source (dossier). Une liste appartient à un seul
// fichier source et à un seul niveau à la fois.
type ListeScolaireModel struct {
	IDListe      int    `gorm:"primaryKey;autoIncrement;column:id_liste" json:"id_liste"`
	IDEcole      int    `gorm:"not null;column:id_ecole" json:"id_ecole"`
	IDAnnee      int    `gorm:"not null;column:id_annee" json:"id_annee"`
	IDNiveau     int    `gorm:"not null;column:id_niveau" json:"id_niveau"`
	SourceFileID string `gorm:"type:varchar(128);not null;index;column:source_file_id" json:"source_file_id"`
	Effectif     *int   `gorm:"column:effectif" json:"effectif,omitempty"`
	Statut       string `gorm:"type:varchar(20);not null;default:'À_VÉRIFIER';column:statut" json:"statut"`

	Liens []LienListeManuelModel `gorm:"foreignKey:IDListe;references:IDListe;constraint:OnDelete:RESTRICT" json:"-"`
}

func (ListeScolaireModel) TableName() string { return "listes_scolaires" }
