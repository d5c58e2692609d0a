package review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

const agregatMinimal = `{
	"lists":[{"id_liste":1,"statut":"À_VÉRIFIER","source_file_id":"f1",
		"id_ecole":1,"nom_ecole":"École A","statut_ecole":"À_VÉRIFIER",
		"id_annee":1,"annee_scolaire":"2025-2026","statut_annee":"À_VÉRIFIER",
		"id_niveau":1,"nom_niveau":"CP","statut_niveau":"À_VÉRIFIER",
		"manuels":[]}],
	"locations":{},
	"nom_fichier":"f1.pdf"
}`

func serveurDossier(t *testing.T, agregat string, blocage chan struct{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/listes/by_file/"):
			if blocage != nil {
				<-blocage
			}
			repondre(w, 200, "success", "OK", agregat)
		case strings.HasPrefix(r.URL.Path, "/api/drive/files/download/"):
			w.Write([]byte("pdf-bytes"))
		default:
			t.Errorf("chemin inattendu: %s", r.URL.Path)
		}
	}))
}

func TestLoader_JointAgregatEtDocument(t *testing.T) {
	srv := serveurDossier(t, agregatMinimal, nil)
	defer srv.Close()

	l := NewLoader(NewClient(srv.URL, "", srv.Client()))
	snap, err := l.Load(context.Background(), "f1")
	assert.NoError(t, err)
	assert.Equal(t, "f1", snap.SourceFileID)
	assert.Len(t, snap.Data.Lists, 1)
	assert.Equal(t, []byte("pdf-bytes"), snap.Document)
}

func TestLoader_ZeroListe(t *testing.T) {
	srv := serveurDossier(t, `{"lists":[],"locations":{},"nom_fichier":"vide.pdf"}`, nil)
	defer srv.Close()

	l := NewLoader(NewClient(srv.URL, "", srv.Client()))
	_, err := l.Load(context.Background(), "vide")
	assert.ErrorIs(t, err, ErrIntrouvable)
}

func TestLoader_ChargementPerimeEcarte(t *testing.T) {
	var nbAgregats int32
	demarre := make(chan struct{})
	blocage := make(chan struct{})

	// seule la première requête d'agrégat traîne : le temps qu'elle
	// revienne, un chargement plus récent est passé.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/listes/by_file/"):
			if atomic.AddInt32(&nbAgregats, 1) == 1 {
				close(demarre)
				<-blocage
			}
			repondre(w, 200, "success", "OK", agregatMinimal)
		case strings.HasPrefix(r.URL.Path, "/api/drive/files/download/"):
			w.Write([]byte("pdf-bytes"))
		}
	}))
	defer srv.Close()

	l := NewLoader(NewClient(srv.URL, "", srv.Client()))

	type resultat struct {
		snap *DossierSnapshot
		err  error
	}
	premier := make(chan resultat, 1)
	go func() {
		snap, err := l.Load(context.Background(), "f1")
		premier <- resultat{snap, err}
	}()

	<-demarre // le premier chargement est en vol

	snap, err := l.Load(context.Background(), "f1")
	assert.NoError(t, err)
	assert.NotNil(t, snap)

	close(blocage)
	res := <-premier
	assert.ErrorIs(t, res.err, ErrChargementPerime)
	assert.Nil(t, res.snap)
}
