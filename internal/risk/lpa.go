// Package risk implements the published 10-year cardiovascular risk
// algorithms (Framingham 2008 general CVD, QRISK3) with a multiplicative
// Lipoprotein(a) risk modifier. Every calculation is a pure function of
// its input; the package holds no mutable state.
package risk

import "github.com/mkoziy/cardiorisk/internal/models"

// lpaSegment is one piece of the piecewise-linear modifier curve.
// Breakpoints belong to both adjoining segments; the segments agree at
// the shared point, so first-match lookup is unambiguous.
type lpaSegment struct {
	fromMgDL, toMgDL       float64
	fromModifier, toModifier float64
}

var lpaSegments = []lpaSegment{
	{30, 50, 1.0, 1.3},
	{50, 100, 1.3, 1.6},
	{100, 200, 1.6, 2.0},
	{200, 300, 2.0, 3.0},
}

// LpaModifier returns the multiplicative risk modifier for an Lp(a)
// concentration in mg/dL. Below 30 mg/dL the modifier is 1.0; above
// 300 mg/dL it is clamped at 3.0. The curve is monotonic non-decreasing.
func LpaModifier(lpaMgDL float64) float64 {
	if lpaMgDL < lpaSegments[0].fromMgDL {
		return 1.0
	}
	for _, seg := range lpaSegments {
		if lpaMgDL <= seg.toMgDL {
			fraction := (lpaMgDL - seg.fromMgDL) / (seg.toMgDL - seg.fromMgDL)
			return seg.fromModifier + fraction*(seg.toModifier-seg.fromModifier)
		}
	}
	return lpaSegments[len(lpaSegments)-1].toModifier
}

// finalize applies the Lp(a) modifier to a base risk and classifies the
// result. The invariant ModifiedRisk == BaseRisk * LpaModifier holds
// exactly; no rounding happens here.
func finalize(algorithm models.RiskAlgorithm, baseRisk float64, breakdown map[string]float64, p *models.PatientInput) (*models.RiskResult, error) {
	modifier := 1.0
	if lpaMgDL, present, err := p.LpaMgDL(); err != nil {
		return nil, err
	} else if present {
		modifier = LpaModifier(lpaMgDL)
	}

	modified := baseRisk * modifier
	return &models.RiskResult{
		Algorithm:    algorithm,
		BaseRisk:     baseRisk,
		LpaModifier:  modifier,
		ModifiedRisk: modified,
		Category:     Category(modified),
		Breakdown:    breakdown,
	}, nil
}
