// file: pkg/review/highlight.go
package review

// HighlightController est la source de vérité unique de "quelle boîte
// est active". Activation au focus d'un champ, effacement au blur :
// les événements de focus sont sérialisés par la boucle d'événements
// de l'hôte, aucune synchronisation n'est nécessaire.
type HighlightController struct {
	index      LocationIndex
	current    *LocationRecord
	currentCle string
	onChange   func(*LocationRecord)
}

// NewHighlightController construit le contrôleur sur l'index de la
// session. onChange (optionnel) reçoit le nouvel enregistrement — nil
// à l'effacement — et n'est déclenché que sur changement effectif :
// c'est lui qui fait défiler la surbrillance dans la fenêtre.
func NewHighlightController(index LocationIndex, onChange func(*LocationRecord)) *HighlightController {
	return &HighlightController{index: index, onChange: onChange}
}

// Activate remplace la surbrillance courante par celle de l'entité
// ciblée. Clé absente de l'index → courant nil, pas d'erreur.
func (h *HighlightController) Activate(entiteType string, entiteID int) *LocationRecord {
	cle := CleLocation(entiteType, entiteID)
	rec, ok := h.index[cle]
	if !ok {
		h.set(nil, "")
		return nil
	}
	h.set(&rec, cle)
	return h.current
}

// Clear efface la surbrillance courante.
func (h *HighlightController) Clear() {
	h.set(nil, "")
}

// Current renvoie l'enregistrement actif, nil si aucun.
func (h *HighlightController) Current() *LocationRecord {
	return h.current
}

func (h *HighlightController) set(rec *LocationRecord, cle string) {
	if cle == h.currentCle {
		return
	}
	h.current = rec
	h.currentCle = cle
	if h.onChange != nil {
		h.onChange(rec)
	}
}
