package model

// ArticleModel — référentiel produit interne, cible des associations
// id_article_ref des manuels.
type ArticleModel struct {
	IDArticle   int     `gorm:"primaryKey;autoIncrement;column:id_article" json:"id_article"`
	Reference   *string `gorm:"type:varchar(64);column:reference" json:"reference,omitempty"`
	Designation string  `gorm:"type:text;not null;column:designation" json:"designation"`
	CodeBarre   *string `gorm:"type:varchar(64);column:code_barre" json:"code_barre,omitempty"`
}

func (ArticleModel) TableName() string { return "referentiel_articles" }
