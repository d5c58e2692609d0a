// file: pkg/review/workspace.go
package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrTitreRequis bloque l'enregistrement d'une nouvelle ligne sans
// titre avant tout appel réseau : l'erreur s'affiche en ligne.
var ErrTitreRequis = errors.New("Le titre est requis")

// Notifier reçoit les notifications transitoires de l'espace de
// travail : succès, information (ex. "déjà validée") ou erreur.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

/* =========================
   Référence de ligne manuel
   ========================= */

// ManuelRef distingue une ligne persistée (id serveur) d'une ligne en
// attente (id temporaire client). Le variant rend irreprésentable la
// sélection d'une ligne non persistée pour l'association référentiel.
type ManuelRef interface{ estRefManuel() }

// Persisted — ligne connue du backend.
type Persisted struct{ ID int }

// Pending — ligne ajoutée localement, pas encore enregistrée.
type Pending struct{ TempID string }

func (Persisted) estRefManuel() {}
func (Pending) estRefManuel()   {}

// LigneManuel est une ligne de la table des manuels telle que rendue :
// les lignes en attente s'affichent avec Enregistrer/Annuler au lieu
// de Enregistrer/Valider/Supprimer.
type LigneManuel struct {
	Ref    ManuelRef
	Manuel Manuel
}

func (l LigneManuel) EstNouvelle() bool {
	_, ok := l.Ref.(Pending)
	return ok
}

/* =========================
   Espace de validation
   ========================= */

// Workspace orchestre la relecture d'un dossier : une liste active à
// la fois (onglet), formulaire d'informations générales, table des
// manuels éditable et surbrillance du document. Aucun état optimiste :
// chaque mutation confirmée recharge l'agrégat complet.
type Workspace struct {
	loader   *Loader
	client   *Client
	notifier Notifier

	sourceFileID string
	snapshot     *DossierSnapshot
	highlight    *HighlightController
	onHighlight  func(*LocationRecord)

	ongletActif int
	selection   *Persisted
	enAttente   []LigneManuel
}

// NewWorkspace construit l'espace de travail. onHighlight (optionnel)
// est relayé au contrôleur de surbrillance à chaque rechargement.
func NewWorkspace(client *Client, notifier Notifier, onHighlight func(*LocationRecord)) *Workspace {
	return &Workspace{
		loader:      NewLoader(client),
		client:      client,
		notifier:    notifier,
		onHighlight: onHighlight,
	}
}

// Open charge le dossier et positionne l'espace sur le premier onglet.
func (w *Workspace) Open(ctx context.Context, sourceFileID string) error {
	w.sourceFileID = sourceFileID
	w.ongletActif = 0
	return w.Reload(ctx)
}

// Reload rejoue le chargement complet de l'agrégat. C'est le seul
// mécanisme de synchronisation avec le backend, et il est idempotent.
// Un chargement périmé (supplanté par un plus récent) est abandonné
// sans toucher l'état.
func (w *Workspace) Reload(ctx context.Context) error {
	snap, err := w.loader.Load(ctx, w.sourceFileID)
	if err != nil {
		if errors.Is(err, ErrChargementPerime) {
			return nil
		}
		w.notifier.Error(err.Error())
		return err
	}

	w.snapshot = snap
	w.highlight = NewHighlightController(snap.Data.Locations, w.onHighlight)
	w.selection = nil
	w.enAttente = nil
	if w.ongletActif >= len(snap.Data.Lists) {
		w.ongletActif = 0
	}
	return nil
}

func (w *Workspace) NomFichier() string {
	if w.snapshot == nil {
		return ""
	}
	return w.snapshot.Data.NomFichier
}

func (w *Workspace) Document() []byte {
	if w.snapshot == nil {
		return nil
	}
	return w.snapshot.Document
}

func (w *Workspace) Listes() []Liste {
	if w.snapshot == nil {
		return nil
	}
	return w.snapshot.Data.Lists
}

// ListeActive renvoie la liste de l'onglet courant, nil avant Open.
func (w *Workspace) ListeActive() *Liste {
	listes := w.Listes()
	if w.ongletActif < 0 || w.ongletActif >= len(listes) {
		return nil
	}
	return &listes[w.ongletActif]
}

// SelectOnglet change de liste active. Purement local : aucune requête,
// la sélection de manuel et les lignes en attente non enregistrées
// sont abandonnées.
func (w *Workspace) SelectOnglet(i int) {
	if i < 0 || i >= len(w.Listes()) || i == w.ongletActif {
		return
	}
	w.ongletActif = i
	w.selection = nil
	w.enAttente = nil
}

func (w *Workspace) OngletActif() int { return w.ongletActif }

// Lignes rend les manuels de la liste active : lignes persistées du
// dernier chargement puis lignes en attente d'enregistrement.
func (w *Workspace) Lignes() []LigneManuel {
	liste := w.ListeActive()
	if liste == nil {
		return nil
	}
	lignes := make([]LigneManuel, 0, len(liste.Manuels)+len(w.enAttente))
	for _, m := range liste.Manuels {
		lignes = append(lignes, LigneManuel{Ref: Persisted{ID: m.IDManuel}, Manuel: m})
	}
	lignes = append(lignes, w.enAttente...)
	return lignes
}

/* =========================
   Sélection pour association
   ========================= */

// ToggleSelection sélectionne une ligne persistée pour l'association
// référentiel, ou la désélectionne au second clic. Une ligne en
// attente n'a pas d'id serveur : le clic est ignoré.
func (w *Workspace) ToggleSelection(ref ManuelRef) {
	p, ok := ref.(Persisted)
	if !ok {
		return
	}
	if w.selection != nil && w.selection.ID == p.ID {
		w.selection = nil
		return
	}
	w.selection = &p
}

func (w *Workspace) Selection() *Persisted { return w.selection }

/* =========================
   Surbrillance
   ========================= */

// FocusChamp active la surbrillance de l'entité dont le champ vient de
// prendre le focus.
func (w *Workspace) FocusChamp(entiteType string, entiteID int) {
	if w.highlight != nil {
		w.highlight.Activate(entiteType, entiteID)
	}
}

// BlurChamp efface la surbrillance.
func (w *Workspace) BlurChamp() {
	if w.highlight != nil {
		w.highlight.Clear()
	}
}

func (w *Workspace) Highlight() *HighlightController { return w.highlight }

/* =========================
   Enregistrements par groupe
   ========================= */

// L'enregistrement se fait toujours par groupe logique complet, jamais
// champ par champ : la forme des payloads suit l'endpoint générique.

func (w *Workspace) SaveEcole(ctx context.Context, nom string, ville *string) error {
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}
	return w.save(ctx, TypeEcoles, liste.IDEcole, map[string]interface{}{
		"nom_ecole": nom,
		"ville":     ville,
	})
}

func (w *Workspace) SaveAnneeScolaire(ctx context.Context, libelle string) error {
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}
	return w.save(ctx, TypeAnneesScolaire, liste.IDAnnee, map[string]interface{}{
		"annee_scolaire": libelle,
	})
}

func (w *Workspace) SaveNomNiveau(ctx context.Context, nom string) error {
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}
	return w.save(ctx, TypeNiveaux, liste.IDNiveau, map[string]interface{}{
		"nom_niveau": nom,
	})
}

func (w *Workspace) SaveEffectif(ctx context.Context, effectif *int) error {
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}
	return w.save(ctx, TypeListes, liste.IDListe, map[string]interface{}{
		"effectif": effectif,
	})
}

// SaveManuel enregistre toutes les colonnes éditables d'une ligne
// persistée d'un coup.
func (w *Workspace) SaveManuel(ctx context.Context, idManuel int, m ManuelCreate) error {
	return w.save(ctx, TypeManuels, idManuel, map[string]interface{}{
		"titre":         m.Titre,
		"editeur":       m.Editeur,
		"annee_edition": m.AnneeEdition,
		"isbn":          m.ISBN,
		"type":          m.Type,
		"matiere":       m.Matiere,
	})
}

func (w *Workspace) save(ctx context.Context, entiteType string, entiteID int, fields map[string]interface{}) error {
	if err := w.client.UpdateEntity(ctx, entiteType, entiteID, fields); err != nil {
		w.notifier.Error(err.Error())
		return err
	}
	w.notifier.Success("Mise à jour réussie")
	return w.Reload(ctx)
}

/* =========================
   Validation / suppression
   ========================= */

// Valider demande le passage au statut VALIDÉ. "Déjà validée" est une
// information, pas une erreur : aucun badge ne change, pas de
// rechargement. Un succès recharge l'agrégat — le backend est
// autoritaire et peut avoir validé des lignes liées.
func (w *Workspace) Valider(ctx context.Context, entiteType string, entiteID int) error {
	err := w.client.ValidateEntity(ctx, entiteType, entiteID)
	switch {
	case err == nil:
		w.notifier.Success("Validation réussie")
		return w.Reload(ctx)
	case errors.Is(err, ErrDejaValide):
		w.notifier.Info("Cette entité est déjà validée")
		return nil
	default:
		w.notifier.Error(err.Error())
		return err
	}
}

// SupprimerManuel supprime une ligne persistée, après confirmation
// explicite du relecteur. Un conflit référentiel (409) est une erreur
// bloquante : la table reste inchangée, pas de rechargement.
func (w *Workspace) SupprimerManuel(ctx context.Context, idManuel int, confirme bool) error {
	if !confirme {
		return nil
	}
	if err := w.client.DeleteEntity(ctx, TypeManuels, idManuel); err != nil {
		w.notifier.Error(err.Error())
		return err
	}
	w.notifier.Success("Suppression réussie")
	return w.Reload(ctx)
}

/* =========================
   Ajout de ligne
   ========================= */

// AjouterLigne insère une ligne transitoire avec un id temporaire
// généré côté client et le statut "à vérifier".
func (w *Workspace) AjouterLigne() LigneManuel {
	ligne := LigneManuel{
		Ref:    Pending{TempID: uuid.NewString()},
		Manuel: Manuel{Statut: StatutAVerifier},
	}
	w.enAttente = append(w.enAttente, ligne)
	return ligne
}

// SauvegarderNouveau persiste une ligne en attente. Titre vide →
// erreur locale, aucun appel réseau.
func (w *Workspace) SauvegarderNouveau(ctx context.Context, tempID string, m ManuelCreate) error {
	if strings.TrimSpace(m.Titre) == "" {
		w.notifier.Error(ErrTitreRequis.Error())
		return ErrTitreRequis
	}
	if !w.enAttenteExiste(tempID) {
		return errors.New("ligne en attente introuvable")
	}
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}

	if _, err := w.client.AddManuel(ctx, liste.IDListe, m); err != nil {
		w.notifier.Error(err.Error())
		return err
	}
	w.notifier.Success("Nouveau manuel ajouté")
	return w.Reload(ctx)
}

// AnnulerAjout abandonne une ligne transitoire : aucune suppression
// côté backend, on recharge simplement l'agrégat.
func (w *Workspace) AnnulerAjout(ctx context.Context, tempID string) error {
	garde := w.enAttente[:0]
	for _, l := range w.enAttente {
		if p, ok := l.Ref.(Pending); ok && p.TempID == tempID {
			continue
		}
		garde = append(garde, l)
	}
	w.enAttente = garde
	return w.Reload(ctx)
}

func (w *Workspace) enAttenteExiste(tempID string) bool {
	for _, l := range w.enAttente {
		if p, ok := l.Ref.(Pending); ok && p.TempID == tempID {
			return true
		}
	}
	return false
}

/* =========================
   Cascade niveau & référentiel
   ========================= */

// ChangerNiveau déclenche le repointage en cascade de la liste active
// et de tous ses manuels, puis recharge.
func (w *Workspace) ChangerNiveau(ctx context.Context, idNiveau int) error {
	liste := w.ListeActive()
	if liste == nil {
		return errors.New("aucune liste active")
	}
	if err := w.client.SetListeNiveau(ctx, liste.IDListe, idNiveau); err != nil {
		w.notifier.Error(err.Error())
		return err
	}
	w.notifier.Success("Niveau mis à jour")
	return w.Reload(ctx)
}

// AssocierReference persiste id_article_ref sur le manuel sélectionné
// via le chemin de mise à jour générique, puis efface la sélection et
// recharge.
func (w *Workspace) AssocierReference(ctx context.Context, idArticle int) error {
	if w.selection == nil {
		return errors.New("aucun manuel sélectionné")
	}
	idManuel := w.selection.ID

	err := w.client.UpdateEntity(ctx, TypeManuels, idManuel, map[string]interface{}{
		"id_article_ref": idArticle,
	})
	if err != nil {
		w.notifier.Error(err.Error())
		return err
	}

	w.selection = nil
	w.notifier.Success("Article associé au manuel")
	return w.Reload(ctx)
}
