// file: internals/features/validation/dossiers/model/source_location_model.go
package model

import "gorm.io/datatypes"

// SourceLocationModel — position d'une entité dans le document rendu.
// coordonnees_json contient {"bounding_box":[{"x":0..1,"y":0..1},...]},
// fractions de la largeur/hauteur de page. Réécrit à chaque passage OCR,
// immuable côté relecture.
type SourceLocationModel struct {
	IDLocation      int            `gorm:"primaryKey;autoIncrement;column:id_location" json:"-"`
	SourceFileID    string         `gorm:"type:varchar(128);not null;index;column:source_file_id" json:"source_file_id"`
	EntiteType      string         `gorm:"type:varchar(30);not null;column:entite_type" json:"entite_type"`
	EntiteID        int            `gorm:"not null;column:entite_id" json:"entite_id"`
	PageNumber      int            `gorm:"not null;column:page_number" json:"page_number"`
	CoordonneesJSON datatypes.JSON `gorm:"column:coordonnees_json" json:"coordonnees_json"`
}

func (SourceLocationModel) TableName() string { return "source_locations" }

// CleLocation compose la clé de l'index de localisation ("{type}_{id}").
func (m *SourceLocationModel) CleLocation() string {
	return CleLocation(m.EntiteType, m.EntiteID)
}
