package model

type NiveauModel struct {
	IDNiveau  int    `gorm:"primaryKey;autoIncrement;column:id_niveau" json:"id_niveau"`
	NomNiveau string `gorm:"type:text;not null;column:nom_niveau" json:"nom_niveau"`
	Statut    string `gorm:"type:varchar(20);not null;default:'À_VÉRIFIER';column:statut" json:"statut"`

	Listes []ListeScolaireModel `gorm:"foreignKey:IDNiveau;references:IDNiveau;constraint:OnDelete:RESTRICT" json:"-"`
}

func (NiveauModel) TableName() string { return "niveaux" }
