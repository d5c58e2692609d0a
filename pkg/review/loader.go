// file: pkg/review/loader.go
package review

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrChargementPerime signale qu'un chargement plus récent a été lancé
// pendant que celui-ci était en vol : sa réponse est jetée, jamais
// appliquée (navigation rapide entre fichiers).
var ErrChargementPerime = errors.New("chargement remplacé par un plus récent")

// DossierSnapshot joint l'agrégat et le flux binaire du document :
// l'espace de validation ne rend rien tant que les deux ne sont pas là.
type DossierSnapshot struct {
	SourceFileID string
	Data         *DossierData
	Document     []byte
}

// Loader recharge l'agrégat complet. Le rechargement après chaque
// mutation est le seul mécanisme de synchronisation d'état : le client
// ne garde aucun cache durable entre deux mutations.
type Loader struct {
	client *Client
	gen    atomic.Uint64
}

func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// Load récupère en parallèle l'agrégat JSON et les octets du document,
// et joint les deux. Zéro liste → ErrIntrouvable : un dossier contient
// au moins une liste par construction, une réponse vide signale un
// fichier incohérent ou pas encore traité.
func (l *Loader) Load(ctx context.Context, sourceFileID string) (*DossierSnapshot, error) {
	myGen := l.gen.Add(1)

	var (
		data     *DossierData
		document []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := l.client.DossierByFile(gctx, sourceFileID)
		if err != nil {
			return err
		}
		data = d
		return nil
	})
	g.Go(func() error {
		b, err := l.client.DownloadFile(gctx, sourceFileID)
		if err != nil {
			return err
		}
		document = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(data.Lists) == 0 {
		return nil, fmt.Errorf("aucune liste pour le fichier %s: %w", sourceFileID, ErrIntrouvable)
	}

	// un Load plus récent est parti entre-temps : cette réponse est périmée
	if l.gen.Load() != myGen {
		return nil, ErrChargementPerime
	}

	return &DossierSnapshot{
		SourceFileID: sourceFileID,
		Data:         data,
		Document:     document,
	}, nil
}
