package risk

import "github.com/mkoziy/cardiorisk/internal/models"

// Category classifies a modified 10-year risk percentage. Boundary
// values belong to the higher category: 10.0 is moderate, 20.0 is high.
func Category(modifiedRiskPercent float64) models.RiskCategory {
	switch {
	case modifiedRiskPercent >= 20:
		return models.RiskHigh
	case modifiedRiskPercent >= 10:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}
