// file: internals/features/validation/dossiers/model/ecole_model.go
package model

import "smartlists_backend/internals/constants"

// EcoleModel — entité de référence partagée : plusieurs listes peuvent
// pointer la même école, une correction est donc globale.
type EcoleModel struct {
	IDEcole  int     `gorm:"primaryKey;autoIncrement;column:id_ecole" json:"id_ecole"`
	NomEcole string  `gorm:"type:text;not null;column:nom_ecole" json:"nom_ecole"`
	Ville    *string `gorm:"type:text;column:ville" json:"ville,omitempty"`
	Statut   string  `gorm:"type:varchar(20);not null;default:'À_VÉRIFIER';column:statut" json:"statut"`

	Listes []ListeScolaireModel `gorm:"foreignKey:IDEcole;references:IDEcole;constraint:OnDelete:RESTRICT" json:"-"`
}

func (EcoleModel) TableName() string { return "ecoles" }

func (m *EcoleModel) EstValide() bool { return constants.EstValide(m.Statut) }
