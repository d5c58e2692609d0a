package model

type AnneeScolaireModel struct {
	IDAnnee       int    `gorm:"primaryKey;autoIncrement;column:id_annee" json:"id_annee"`
	AnneeScolaire string `gorm:"type:varchar(20);not null;uniqueIndex;column:annee_scolaire" json:"annee_scolaire"`
	Statut        string `gorm:"type:varchar(20);not null;default:'À_VÉRIFIER';column:statut" json:"statut"`

	Listes []ListeScolaireModel `gorm:"foreignKey:IDAnnee;references:IDAnnee;constraint:OnDelete:RESTRICT" json:"-"`
}

func (AnneeScolaireModel) TableName() string { return "annees_scolaires" }
