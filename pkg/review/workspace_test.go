package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

/* =========================
   Notificateur enregistreur
   ========================= */

type notifRecorder struct {
	succes  []string
	infos   []string
	erreurs []string
}

func (n *notifRecorder) Success(m string) { n.succes = append(n.succes, m) }
func (n *notifRecorder) Info(m string)    { n.infos = append(n.infos, m) }
func (n *notifRecorder) Error(m string)   { n.erreurs = append(n.erreurs, m) }

/* =========================
   Faux backend en mémoire
   ========================= */

type fauxBackend struct {
	t  *testing.T
	mu sync.Mutex

	data         DossierData
	nextManuelID int
	verrouilles  map[int]bool // manuels référencés ailleurs : delete → 409
	requetes     []string     // journal "METHOD path" des mutations et lectures
}

func nouveauFauxBackend(t *testing.T) *fauxBackend {
	ville := "Lyon"
	return &fauxBackend{
		t:            t,
		nextManuelID: 100,
		verrouilles:  map[int]bool{},
		data: DossierData{
			NomFichier: "listes_jules_ferry.pdf",
			Locations:  LocationIndex{},
			Lists: []Liste{
				{
					IDListe: 5, Statut: StatutAVerifier, SourceFileID: "f1",
					IDEcole: 1, NomEcole: "École Jules Ferry", Ville: &ville, StatutEcole: StatutAVerifier,
					IDAnnee: 2, AnneeScolaire: "2025-2026", StatutAnnee: StatutAVerifier,
					IDNiveau: 1, NomNiveau: "CE2", StatutNiveau: StatutAVerifier,
					Manuels: []Manuel{
						{IDManuel: 9, Titre: "Maths CE2", Statut: StatutValide},
						{IDManuel: 10, Titre: "Français CE2", Statut: StatutAVerifier},
					},
				},
				{
					IDListe: 6, Statut: StatutAVerifier, SourceFileID: "f1",
					IDEcole: 1, NomEcole: "École Jules Ferry", Ville: &ville, StatutEcole: StatutAVerifier,
					IDAnnee: 2, AnneeScolaire: "2025-2026", StatutAnnee: StatutAVerifier,
					IDNiveau: 4, NomNiveau: "CM1", StatutNiveau: StatutAVerifier,
					Manuels: []Manuel{
						{IDManuel: 11, Titre: "Maths CM1", Statut: StatutAVerifier},
					},
				},
			},
		},
	}
}

func (b *fauxBackend) liste(id int) *Liste {
	for i := range b.data.Lists {
		if b.data.Lists[i].IDListe == id {
			return &b.data.Lists[i]
		}
	}
	return nil
}

func (b *fauxBackend) manuel(id int) (*Liste, *Manuel) {
	for i := range b.data.Lists {
		for j := range b.data.Lists[i].Manuels {
			if b.data.Lists[i].Manuels[j].IDManuel == id {
				return &b.data.Lists[i], &b.data.Lists[i].Manuels[j]
			}
		}
	}
	return nil, nil
}

func (b *fauxBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requetes = append(b.requetes, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/listes/by_file/"):
		raw, err := json.Marshal(b.data)
		assert.NoError(b.t, err)
		repondre(w, 200, "success", "OK", string(raw))

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/drive/files/download/"):
		w.Write([]byte("pdf-bytes"))

	case r.Method == http.MethodPost && len(parts) == 5 && parts[1] == "entities" && parts[4] == "validate":
		b.valider(w, parts[2], parts[3])

	case r.Method == http.MethodDelete && len(parts) == 4 && parts[1] == "entities":
		b.supprimer(w, parts[2], parts[3])

	case r.Method == http.MethodPut && len(parts) == 4 && parts[1] == "entities":
		b.mettreAJour(w, r, parts[2], parts[3])

	case r.Method == http.MethodPut && len(parts) == 4 && parts[1] == "listes" && parts[3] == "niveau":
		b.cascadeNiveau(w, r, parts[2])

	case r.Method == http.MethodPost && len(parts) == 4 && parts[1] == "listes" && parts[3] == "manuels":
		b.ajouterManuel(w, r, parts[2])

	default:
		b.t.Errorf("requête inattendue: %s %s", r.Method, r.URL.Path)
		repondre(w, 500, "error", "route inconnue", "")
	}
}

func (b *fauxBackend) valider(w http.ResponseWriter, entiteType, idStr string) {
	id, _ := strconv.Atoi(idStr)
	if entiteType == TypeManuels {
		if _, m := b.manuel(id); m != nil {
			if m.Statut == StatutValide {
				repondre(w, 409, "error", "Cette entité est déjà validée", "")
				return
			}
			m.Statut = StatutValide
			repondre(w, 200, "success", "Validation réussie", "")
			return
		}
	}
	repondre(w, 404, "error", "entité introuvable", "")
}

func (b *fauxBackend) supprimer(w http.ResponseWriter, entiteType, idStr string) {
	id, _ := strconv.Atoi(idStr)
	if b.verrouilles[id] {
		repondre(w, 409, "error", "Cet élément ne peut pas être supprimé car il est utilisé par d'autres données", "")
		return
	}
	liste, m := b.manuel(id)
	if m == nil {
		repondre(w, 404, "error", "entité introuvable", "")
		return
	}
	garde := liste.Manuels[:0]
	for _, x := range liste.Manuels {
		if x.IDManuel != id {
			garde = append(garde, x)
		}
	}
	liste.Manuels = garde
	repondre(w, 200, "success", "Suppression réussie", "")
}

func (b *fauxBackend) mettreAJour(w http.ResponseWriter, r *http.Request, entiteType, idStr string) {
	id, _ := strconv.Atoi(idStr)
	var fields map[string]interface{}
	assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&fields))

	switch entiteType {
	case TypeManuels:
		_, m := b.manuel(id)
		if m == nil {
			repondre(w, 404, "error", "entité introuvable", "")
			return
		}
		if ref, ok := fields["id_article_ref"].(float64); ok {
			v := int(ref)
			m.IDArticleRef = &v
		}
		if titre, ok := fields["titre"].(string); ok {
			m.Titre = titre
		}
	case TypeEcoles:
		for i := range b.data.Lists {
			if b.data.Lists[i].IDEcole == id {
				if nom, ok := fields["nom_ecole"].(string); ok {
					b.data.Lists[i].NomEcole = nom
				}
			}
		}
	}
	repondre(w, 200, "success", "Mise à jour réussie", "")
}

func (b *fauxBackend) cascadeNiveau(w http.ResponseWriter, r *http.Request, idStr string) {
	id, _ := strconv.Atoi(idStr)
	var body struct {
		IDNiveau int `json:"id_niveau"`
	}
	assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))

	liste := b.liste(id)
	if liste == nil {
		repondre(w, 404, "error", "liste introuvable", "")
		return
	}
	liste.IDNiveau = body.IDNiveau
	for i := range liste.Manuels {
		n := body.IDNiveau
		liste.Manuels[i].IDNiveau = &n
	}
	repondre(w, 200, "success", "Niveau mis à jour", "")
}

func (b *fauxBackend) ajouterManuel(w http.ResponseWriter, r *http.Request, idStr string) {
	id, _ := strconv.Atoi(idStr)
	var req ManuelCreate
	assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))

	liste := b.liste(id)
	if liste == nil {
		repondre(w, 404, "error", "liste introuvable", "")
		return
	}
	n := liste.IDNiveau
	m := Manuel{
		IDManuel: b.nextManuelID,
		Titre:    req.Titre,
		IDNiveau: &n,
		Statut:   StatutAVerifier,
	}
	b.nextManuelID++
	liste.Manuels = append(liste.Manuels, m)

	raw, _ := json.Marshal(m)
	repondre(w, 201, "success", "Nouveau manuel ajouté", string(raw))
}

func (b *fauxBackend) nbRequetes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requetes)
}

/* =========================
   Mise en place
   ========================= */

func ouvrirWorkspace(t *testing.T) (*Workspace, *fauxBackend, *notifRecorder) {
	t.Helper()
	backend := nouveauFauxBackend(t)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	notif := &notifRecorder{}
	w := NewWorkspace(NewClient(srv.URL, "", srv.Client()), notif, nil)
	assert.NoError(t, w.Open(context.Background(), "f1"))
	return w, backend, notif
}

func idsPersistes(w *Workspace) []int {
	var ids []int
	for _, l := range w.Lignes() {
		if p, ok := l.Ref.(Persisted); ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

/* =========================
   Scénarios
   ========================= */

func TestWorkspace_Ouverture(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	assert.Equal(t, "listes_jules_ferry.pdf", w.NomFichier())
	assert.Equal(t, []byte("pdf-bytes"), w.Document())
	assert.Len(t, w.Listes(), 2)
	assert.Equal(t, "CE2", w.ListeActive().NomNiveau)
	assert.Equal(t, []int{9, 10}, idsPersistes(w))
}

func TestWorkspace_AjoutPuisAnnulation(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)
	avant := idsPersistes(w)

	ligne := w.AjouterLigne()
	assert.True(t, ligne.EstNouvelle())
	assert.Equal(t, StatutAVerifier, ligne.Manuel.Statut)
	assert.Len(t, w.Lignes(), 3)

	tempID := ligne.Ref.(Pending).TempID
	assert.NotEmpty(t, tempID)

	assert.NoError(t, w.AnnulerAjout(context.Background(), tempID))
	assert.Equal(t, avant, idsPersistes(w), "l'ensemble persisté doit être identique après annulation")
	assert.Len(t, w.Lignes(), 2)
}

func TestWorkspace_NouveauSansTitre_AucunReseau(t *testing.T) {
	w, backend, notif := ouvrirWorkspace(t)

	ligne := w.AjouterLigne()
	tempID := ligne.Ref.(Pending).TempID

	avant := backend.nbRequetes()
	err := w.SauvegarderNouveau(context.Background(), tempID, ManuelCreate{Titre: "   "})
	assert.ErrorIs(t, err, ErrTitreRequis)
	assert.Equal(t, avant, backend.nbRequetes(), "titre vide : aucun appel réseau")
	assert.Contains(t, notif.erreurs, ErrTitreRequis.Error())
}

func TestWorkspace_NouveauAvecTitre(t *testing.T) {
	w, _, notif := ouvrirWorkspace(t)

	ligne := w.AjouterLigne()
	tempID := ligne.Ref.(Pending).TempID

	assert.NoError(t, w.SauvegarderNouveau(context.Background(), tempID, ManuelCreate{Titre: "Histoire CE2"}))
	assert.Equal(t, []int{9, 10, 100}, idsPersistes(w))
	assert.Contains(t, notif.succes, "Nouveau manuel ajouté")

	// plus aucune ligne transitoire après rechargement
	for _, l := range w.Lignes() {
		assert.False(t, l.EstNouvelle())
	}
}

func TestWorkspace_ValiderDejaValide(t *testing.T) {
	w, _, notif := ouvrirWorkspace(t)

	// le manuel 9 est déjà VALIDÉ côté backend
	assert.NoError(t, w.Valider(context.Background(), TypeManuels, 9))
	assert.Contains(t, notif.infos, "Cette entité est déjà validée")
	assert.Empty(t, notif.erreurs)
	assert.Equal(t, StatutValide, w.Lignes()[0].Manuel.Statut, "aucun badge ne change")
}

func TestWorkspace_ValiderPuisRecharge(t *testing.T) {
	w, _, notif := ouvrirWorkspace(t)

	assert.NoError(t, w.Valider(context.Background(), TypeManuels, 10))
	assert.Contains(t, notif.succes, "Validation réussie")
	assert.Equal(t, StatutValide, w.Lignes()[1].Manuel.Statut)
}

func TestWorkspace_SuppressionConflit(t *testing.T) {
	w, backend, notif := ouvrirWorkspace(t)
	backend.verrouilles[10] = true
	avant := idsPersistes(w)

	err := w.SupprimerManuel(context.Background(), 10, true)
	assert.ErrorIs(t, err, ErrConflit)
	assert.NotEmpty(t, notif.erreurs)
	assert.Equal(t, avant, idsPersistes(w), "la table reste inchangée après un 409")
}

func TestWorkspace_SuppressionSansConfirmation(t *testing.T) {
	w, backend, _ := ouvrirWorkspace(t)
	avant := backend.nbRequetes()

	assert.NoError(t, w.SupprimerManuel(context.Background(), 10, false))
	assert.Equal(t, avant, backend.nbRequetes())
	assert.Equal(t, []int{9, 10}, idsPersistes(w))
}

func TestWorkspace_SuppressionConfirmee(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	assert.NoError(t, w.SupprimerManuel(context.Background(), 10, true))
	assert.Equal(t, []int{9}, idsPersistes(w))
}

func TestWorkspace_OngletsLocauxEtSelection(t *testing.T) {
	w, backend, _ := ouvrirWorkspace(t)

	w.ToggleSelection(Persisted{ID: 9})
	assert.NotNil(t, w.Selection())

	avant := backend.nbRequetes()
	w.SelectOnglet(1)
	assert.Equal(t, avant, backend.nbRequetes(), "changement d'onglet purement local")
	assert.Nil(t, w.Selection(), "le changement d'onglet efface la sélection")
	assert.Equal(t, "CM1", w.ListeActive().NomNiveau)

	// retour sur l'onglet 1 : valeurs du dernier enregistrement, pas
	// d'édits transitoires
	w.SelectOnglet(0)
	assert.Equal(t, "CE2", w.ListeActive().NomNiveau)
	assert.Equal(t, []int{9, 10}, idsPersistes(w))
}

func TestWorkspace_OngletAbandonneLignesEnAttente(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	w.AjouterLigne()
	assert.Len(t, w.Lignes(), 3)

	w.SelectOnglet(1)
	w.SelectOnglet(0)
	assert.Len(t, w.Lignes(), 2, "une ligne non enregistrée ne survit pas au changement d'onglet")
}

func TestWorkspace_SelectionLigneTransitoireIgnoree(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	ligne := w.AjouterLigne()
	w.ToggleSelection(ligne.Ref)
	assert.Nil(t, w.Selection(), "une ligne sans id serveur n'est pas sélectionnable")

	w.ToggleSelection(Persisted{ID: 9})
	assert.Equal(t, 9, w.Selection().ID)
	w.ToggleSelection(Persisted{ID: 9})
	assert.Nil(t, w.Selection(), "second clic : désélection")
}

func TestWorkspace_CascadeNiveau(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	assert.NoError(t, w.ChangerNiveau(context.Background(), 3))
	assert.Equal(t, 3, w.ListeActive().IDNiveau)
	for _, l := range w.Lignes() {
		if assert.NotNil(t, l.Manuel.IDNiveau) {
			assert.Equal(t, 3, *l.Manuel.IDNiveau, "chaque manuel suit le niveau de la liste")
		}
	}
}

func TestWorkspace_AssociationReferentiel(t *testing.T) {
	w, _, notif := ouvrirWorkspace(t)

	w.ToggleSelection(Persisted{ID: 10})
	assert.NoError(t, w.AssocierReference(context.Background(), 77))
	assert.Nil(t, w.Selection(), "la sélection est effacée après association")
	assert.Contains(t, notif.succes, "Article associé au manuel")

	var m *Manuel
	for _, l := range w.Lignes() {
		if p, ok := l.Ref.(Persisted); ok && p.ID == 10 {
			manuel := l.Manuel
			m = &manuel
		}
	}
	if assert.NotNil(t, m) && assert.NotNil(t, m.IDArticleRef) {
		assert.Equal(t, 77, *m.IDArticleRef)
	}
}

func TestWorkspace_SaveEcole(t *testing.T) {
	w, _, notif := ouvrirWorkspace(t)

	ville := "Paris"
	assert.NoError(t, w.SaveEcole(context.Background(), "École Jean Moulin", &ville))
	assert.Contains(t, notif.succes, "Mise à jour réussie")
	assert.Equal(t, "École Jean Moulin", w.ListeActive().NomEcole)
}

func TestWorkspace_SauvegarderNouveauSansListeEnAttente(t *testing.T) {
	w, _, _ := ouvrirWorkspace(t)

	err := w.SauvegarderNouveau(context.Background(), "temp-inconnu", ManuelCreate{Titre: "X"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTitreRequis)
}

func TestWorkspace_FocusEtBlurChamp(t *testing.T) {
	backend := nouveauFauxBackend(t)
	box := json.RawMessage(`{"bounding_box":[{"x":0.2,"y":0.3},{"x":0.5,"y":0.4}]}`)
	backend.data.Locations = LocationIndex{
		CleLocation(LocManuel, 9): {EntiteType: LocManuel, EntiteID: 9, PageNumber: 2, CoordonneesJSON: box},
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	var changements []*LocationRecord
	notif := &notifRecorder{}
	w := NewWorkspace(NewClient(srv.URL, "", srv.Client()), notif, func(rec *LocationRecord) {
		changements = append(changements, rec)
	})
	assert.NoError(t, w.Open(context.Background(), "f1"))

	w.FocusChamp(LocManuel, 9)
	if assert.NotNil(t, w.Highlight().Current()) {
		ov, ok := w.Highlight().Current().Overlay()
		assert.True(t, ok)
		assert.Equal(t, 2, ov.Page)
		assert.InDelta(t, 20, ov.Left, 1e-9)
	}

	w.FocusChamp(LocEcole, 1) // absent de l'index
	assert.Nil(t, w.Highlight().Current())

	w.BlurChamp()
	assert.Nil(t, w.Highlight().Current())
	assert.Len(t, changements, 2) // activation puis passage à nil
}
