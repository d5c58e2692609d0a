package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"smartlists_backend/internals/constants"
	dossierModel "smartlists_backend/internals/features/validation/dossiers/model"
	"smartlists_backend/internals/features/validation/referentiel/model"
	"smartlists_backend/internals/features/validation/testutil"
)

func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.PrepareDB(t)

	h := &ReferentielController{DB: db}
	app := fiber.New()
	app.Get("/api/referentiel/search", h.SearchArticles)
	app.Get("/api/search/manuels", h.SuggestManuels)
	return app, db
}

func appeler(t *testing.T, app *fiber.App, path string) (int, json.RawMessage) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env.Data
}

func ptr(s string) *string { return &s }

func seedArticles(t *testing.T, db *gorm.DB) {
	t.Helper()
	articles := []model.ArticleModel{
		{Reference: ptr("REF-001"), Designation: "Cahier 96 pages grands carreaux", CodeBarre: ptr("3210000000011")},
		{Reference: ptr("REF-002"), Designation: "Cahier de brouillon", CodeBarre: ptr("3210000000028")},
		{Reference: ptr("CAH-100"), Designation: "Classeur souple A4", CodeBarre: ptr("3210000000035")},
	}
	for i := range articles {
		if err := db.Create(&articles[i]).Error; err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}
}

func TestSearchArticles(t *testing.T) {
	app, db := newApp(t)
	seedArticles(t, db)

	code, data := appeler(t, app, "/api/referentiel/search?q=cahier")
	assert.Equal(t, http.StatusOK, code)

	var articles []model.ArticleModel
	assert.NoError(t, json.Unmarshal(data, &articles))
	assert.Len(t, articles, 2, "LIKE sur la désignation")

	// la référence et le code-barres sont aussi cherchés
	code, data = appeler(t, app, "/api/referentiel/search?q=CAH-100")
	assert.Equal(t, http.StatusOK, code)
	assert.NoError(t, json.Unmarshal(data, &articles))
	if assert.Len(t, articles, 1) {
		assert.Equal(t, "Classeur souple A4", articles[0].Designation)
	}
}

func TestSearchArticles_RequeteCourte(t *testing.T) {
	app, db := newApp(t)
	seedArticles(t, db)

	for _, q := range []string{"", "ca", "  a  "} {
		code, data := appeler(t, app, "/api/referentiel/search?q="+url.QueryEscape(q))
		assert.Equal(t, http.StatusOK, code)

		var articles []model.ArticleModel
		assert.NoError(t, json.Unmarshal(data, &articles))
		assert.Empty(t, articles, "moins de 3 caractères : liste vide sans recherche")
	}
}

func TestSuggestManuels(t *testing.T) {
	app, db := newApp(t)

	isbn := "9782091234567"
	manuels := []dossierModel.ManuelModel{
		{Titre: "Maths CE2 collection Outils", ISBN: &isbn, Statut: constants.StatutAVerifier},
		{Titre: "Français CE2", Statut: constants.StatutAVerifier},
	}
	for i := range manuels {
		assert.NoError(t, db.Create(&manuels[i]).Error)
	}

	code, data := appeler(t, app, "/api/search/manuels?q=maths")
	assert.Equal(t, http.StatusOK, code)

	var trouves []dossierModel.ManuelModel
	assert.NoError(t, json.Unmarshal(data, &trouves))
	assert.Len(t, trouves, 1)

	// recherche par ISBN
	code, data = appeler(t, app, "/api/search/manuels?q=9782091")
	assert.Equal(t, http.StatusOK, code)
	assert.NoError(t, json.Unmarshal(data, &trouves))
	if assert.Len(t, trouves, 1) {
		assert.Equal(t, "Maths CE2 collection Outils", trouves[0].Titre)
	}
}
