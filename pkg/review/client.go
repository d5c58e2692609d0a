// file: pkg/review/client.go
package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Issues sémantiques distinctes des échecs génériques : un 409 sur une
// validation signifie "déjà fait" (informatif), un 409 sur une
// suppression signifie "référencé ailleurs" (bloquant).
var (
	ErrDejaValide  = errors.New("entité déjà validée")
	ErrConflit     = errors.New("opération en conflit avec des données existantes")
	ErrIntrouvable = errors.New("ressource introuvable")
)

const messageGenerique = "Une erreur est survenue, veuillez réessayer"

// Client enveloppe l'API REST du back-office. Pas de singleton ambiant :
// URL de base, jeton de session et *http.Client sont injectés à la
// construction.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    hc,
	}
}

// enveloppe — format commun de toutes les réponses JSON du backend.
type enveloppe struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (int, enveloppe, error) {
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return 0, enveloppe{}, fmt.Errorf("encodage de la requête: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, enveloppe{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, enveloppe{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, enveloppe{}, err
	}

	var env enveloppe
	if len(raw) > 0 {
		// une enveloppe illisible n'est pas bloquante : le code HTTP suffit
		_ = sonic.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env, nil
}

// erreurAPI résout un statut HTTP d'échec en erreur typée. conflit est
// la sentinelle à enveloper sur un 409, propre à chaque opération.
func erreurAPI(status int, env enveloppe, conflit error) error {
	message := env.Message
	if message == "" {
		message = messageGenerique
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, ErrIntrouvable)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", message, conflit)
	default:
		return errors.New(message)
	}
}

/* =========================
   Lectures
   ========================= */

// DossierByFile récupère l'agrégat complet d'un fichier source.
func (c *Client) DossierByFile(ctx context.Context, sourceFileID string) (*DossierData, error) {
	status, env, err := c.do(ctx, http.MethodGet, "/api/listes/by_file/"+url.PathEscape(sourceFileID), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, erreurAPI(status, env, ErrConflit)
	}

	var data DossierData
	if err := sonic.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("décodage de l'agrégat: %w", err)
	}
	return &data, nil
}

// DownloadFile récupère le flux binaire du document source.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/drive/files/download/"+url.PathEscape(fileID), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env enveloppe
		if raw, readErr := io.ReadAll(resp.Body); readErr == nil {
			_ = sonic.Unmarshal(raw, &env)
		}
		return nil, erreurAPI(resp.StatusCode, env, ErrConflit)
	}
	return io.ReadAll(resp.Body)
}

// SearchReferentiel interroge le référentiel produit. En dessous de
// 3 caractères on ne part même pas sur le réseau. Le debounce de la
// saisie (500 ms dans l'interface de référence) reste à la charge de
// l'appelant : ici chaque appel part immédiatement.
func (c *Client) SearchReferentiel(ctx context.Context, q string) ([]Article, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 3 {
		return []Article{}, nil
	}

	status, env, err := c.do(ctx, http.MethodGet, "/api/referentiel/search?q="+url.QueryEscape(q), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, erreurAPI(status, env, ErrConflit)
	}

	var articles []Article
	if err := sonic.Unmarshal(env.Data, &articles); err != nil {
		return nil, fmt.Errorf("décodage des articles: %w", err)
	}
	return articles, nil
}

/* =========================
   Mutations
   ========================= */

// UpdateEntity envoie la mise à jour d'un groupe logique de champs.
func (c *Client) UpdateEntity(ctx context.Context, entiteType string, entiteID int, fields map[string]interface{}) error {
	path := "/api/entities/" + entiteType + "/" + strconv.Itoa(entiteID)
	status, env, err := c.do(ctx, http.MethodPut, path, fields)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return erreurAPI(status, env, ErrConflit)
	}
	return nil
}

// ValidateEntity demande la transition vers VALIDÉ. Un 409 remonte en
// ErrDejaValide : l'appelant le présente comme une information.
func (c *Client) ValidateEntity(ctx context.Context, entiteType string, entiteID int) error {
	path := "/api/entities/" + entiteType + "/" + strconv.Itoa(entiteID) + "/validate"
	status, env, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return erreurAPI(status, env, ErrDejaValide)
	}
	return nil
}

// DeleteEntity supprime durement. Un 409 remonte en ErrConflit :
// l'entité est encore référencée, l'appelant bloque.
func (c *Client) DeleteEntity(ctx context.Context, entiteType string, entiteID int) error {
	path := "/api/entities/" + entiteType + "/" + strconv.Itoa(entiteID)
	status, env, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return erreurAPI(status, env, ErrConflit)
	}
	return nil
}

// SetListeNiveau déclenche le repointage en cascade du niveau d'une
// liste et de tous ses manuels. Transaction côté backend : le client
// ne réplique jamais l'éventail localement, il recharge.
func (c *Client) SetListeNiveau(ctx context.Context, listeID, idNiveau int) error {
	path := "/api/listes/" + strconv.Itoa(listeID) + "/niveau"
	status, env, err := c.do(ctx, http.MethodPut, path, map[string]interface{}{"id_niveau": idNiveau})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return erreurAPI(status, env, ErrConflit)
	}
	return nil
}

// AddManuel persiste une nouvelle ligne de manuel sur une liste.
func (c *Client) AddManuel(ctx context.Context, listeID int, m ManuelCreate) (*Manuel, error) {
	path := "/api/listes/" + strconv.Itoa(listeID) + "/manuels"
	status, env, err := c.do(ctx, http.MethodPost, path, m)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return nil, erreurAPI(status, env, ErrConflit)
	}

	var created Manuel
	if err := sonic.Unmarshal(env.Data, &created); err != nil {
		return nil, fmt.Errorf("décodage du manuel créé: %w", err)
	}
	return &created, nil
}
