// file: internals/features/validation/dossiers/model/manuel_model.go
package model

// ManuelModel — un manuel extrait par OCR puis corrigé à la main.
// id_article_ref relie le manuel à un article du référentiel produit
// une fois l'association faite dans l'espace de validation.
type ManuelModel struct {
	IDManuel     int     `gorm:"primaryKey;autoIncrement;column:id_manuel" json:"id_manuel"`
	Titre        string  `gorm:"type:text;not null;column:titre" json:"titre"`
	Editeur      *string `gorm:"type:text;column:editeur" json:"editeur,omitempty"`
	AnneeEdition *string `gorm:"type:varchar(20);column:annee_edition" json:"annee_edition,omitempty"`
	ISBN         *string `gorm:"type:varchar(32);column:isbn" json:"isbn,omitempty"`
	Type         *string `gorm:"type:text;column:type" json:"type,omitempty"`
	Matiere      *string `gorm:"type:text;column:matiere" json:"matiere,omitempty"`
	IDNiveau     *int    `gorm:"column:id_niveau" json:"id_niveau,omitempty"`
	IDArticleRef *int    `gorm:"column:id_article_ref" json:"id_article_ref,omitempty"`
	Statut       string  `gorm:"type:varchar(20);not null;default:'À_VÉRIFIER';column:statut" json:"statut"`

	Liens []LienListeManuelModel `gorm:"foreignKey:IDManuel;references:IDManuel;constraint:OnDelete:RESTRICT" json:"-"`
}

func (ManuelModel) TableName() string { return "manuels" }
