package models

// RiskResult is the output of one risk calculation.
//
// ModifiedRisk is always exactly BaseRisk * LpaModifier, and Category is
// a pure function of ModifiedRisk.
type RiskResult struct {
	Algorithm RiskAlgorithm `json:"algorithm"`

	// BaseRisk is the unmodified 10-year risk percentage (0-100).
	BaseRisk float64 `json:"base_risk"`

	// LpaModifier is >= 1.0; it is 1.0 when no Lp(a) value was supplied.
	LpaModifier float64 `json:"lpa_modifier"`

	// ModifiedRisk = BaseRisk * LpaModifier.
	ModifiedRisk float64 `json:"modified_risk"`

	Category RiskCategory `json:"risk_category"`

	// Breakdown itemizes linear-predictor contributions by covariate
	// group so the coefficient tables remain auditable term by term.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}
