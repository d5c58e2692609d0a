// file: pkg/overlay/overlay.go
//
// Package overlay convertit les boîtes englobantes normalisées renvoyées
// par l'extraction (fractions de page, x,y ∈ [0,1]) en rectangles de
// surbrillance positionnés en pourcentages CSS par rapport au coin
// haut-gauche de la page rendue.
package overlay

import (
	"fmt"
	"log"
	"math"
)

// Point est un sommet de boîte englobante tel que sérialisé par le
// backend. Les champs sont des pointeurs : un sommet sans x ou sans y
// est une donnée malformée, pas un zéro implicite.
type Point struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Record est l'enregistrement de localisation d'une entité :
// une page et un ensemble de sommets.
type Record struct {
	PageNumber  int     `json:"page_number"`
	BoundingBox []Point `json:"bounding_box"`
}

// Overlay est le rectangle englobant aligné sur les axes (AABB) du
// nuage de points, exprimé en pourcentages de la page. Les boîtes
// multi-points avec rotation sont approximées par leur AABB : perte
// de précision assumée.
type Overlay struct {
	Page   int
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// FromBoundingBox calcule l'AABB d'un ensemble de sommets. Un ensemble
// vide, un sommet incomplet ou une coordonnée non finie rendent la boîte
// inexploitable : on journalise et on répond ok=false, jamais de panique,
// le document reste consultable sans surbrillance.
func FromBoundingBox(points []Point) (Overlay, bool) {
	if len(points) == 0 {
		log.Printf("[WARN] overlay: bounding_box vide, surbrillance ignorée")
		return Overlay{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, p := range points {
		if p.X == nil || p.Y == nil {
			log.Printf("[WARN] overlay: sommet sans x ou y, surbrillance ignorée")
			return Overlay{}, false
		}
		x, y := *p.X, *p.Y
		if !isFinite(x) || !isFinite(y) {
			log.Printf("[WARN] overlay: coordonnée non finie (%v, %v), surbrillance ignorée", x, y)
			return Overlay{}, false
		}
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	return Overlay{
		Left:   minX * 100,
		Top:    minY * 100,
		Width:  (maxX - minX) * 100,
		Height: (maxY - minY) * 100,
	}, true
}

// FromRecord applique FromBoundingBox et reporte le numéro de page.
func FromRecord(rec Record) (Overlay, bool) {
	ov, ok := FromBoundingBox(rec.BoundingBox)
	if !ok {
		return Overlay{}, false
	}
	ov.Page = rec.PageNumber
	return ov, true
}

// CSS renvoie les quatre offsets prêts à poser sur un élément positionné
// en absolu dans le conteneur de page.
func (o Overlay) CSS() (left, top, width, height string) {
	return pct(o.Left), pct(o.Top), pct(o.Width), pct(o.Height)
}

func pct(v float64) string {
	return fmt.Sprintf("%.4f%%", v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
