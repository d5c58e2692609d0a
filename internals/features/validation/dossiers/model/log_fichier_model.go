package model

import "time"

// LogFichierModel — trace de traitement d'un fichier source (l'extraction
// OCR est faite en amont ; ici on ne fait que lire nom, mime et statut).
type LogFichierModel struct {
	IDFichierDrive string    `gorm:"primaryKey;type:varchar(128);column:id_fichier_drive" json:"id_fichier_drive"`
	NomFichier     string    `gorm:"type:text;not null;column:nom_fichier" json:"nom_fichier"`
	MimeType       *string   `gorm:"type:varchar(100);column:mime_type" json:"mime_type,omitempty"`
	Statut         string    `gorm:"type:varchar(30);not null;column:statut" json:"statut"`
	ErrorMessage   *string   `gorm:"type:varchar(255);column:error_message" json:"error_message,omitempty"`
	DateTraitement time.Time `gorm:"not null;column:date_traitement" json:"date_traitement"`
}

func (LogFichierModel) TableName() string { return "logs_fichiers" }
