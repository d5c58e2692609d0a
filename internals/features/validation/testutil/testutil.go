// file: internals/features/validation/testutil/testutil.go
//
// Outillage de test : base SQLite en mémoire avec le schéma complet de
// la validation, contraintes de clés étrangères actives (la règle du
// 409 sur suppression en dépend).
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dossierModel "smartlists_backend/internals/features/validation/dossiers/model"
	refModel "smartlists_backend/internals/features/validation/referentiel/model"
)

var dbSeq atomic.Int64

// PrepareDB ouvre une base isolée par test et migre toutes les tables.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:validation_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("ouverture sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("pool sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// tables référencées d'abord, liaison en dernier
	err = db.AutoMigrate(
		&dossierModel.EcoleModel{},
		&dossierModel.AnneeScolaireModel{},
		&dossierModel.NiveauModel{},
		&dossierModel.ManuelModel{},
		&dossierModel.ListeScolaireModel{},
		&dossierModel.LienListeManuelModel{},
		&dossierModel.LogFichierModel{},
		&dossierModel.SourceLocationModel{},
		&refModel.ArticleModel{},
	)
	if err != nil {
		t.Fatalf("migration: %v", err)
	}
	return db
}
