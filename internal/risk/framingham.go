package risk

import (
	"math"

	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/units"
)

// framinghamCoefficients holds the sex-specific Cox model from the 2008
// Framingham general cardiovascular disease risk function (D'Agostino
// et al., Circulation 2008). Continuous covariates enter as natural
// logarithms of the raw values, cholesterol in mg/dL and SBP in mmHg.
type framinghamCoefficients struct {
	LnAge          float64
	LnTotalChol    float64
	LnHDL          float64
	LnSBPUntreated float64
	LnSBPTreated   float64
	Smoker         float64
	Diabetes       float64

	// MeanTerms is the mean linear predictor of the derivation cohort;
	// BaselineSurvival the 10-year survival at that mean.
	MeanTerms        float64
	BaselineSurvival float64
}

var framinghamBySex = map[models.Sex]framinghamCoefficients{
	models.SexMale: {
		LnAge:            3.06117,
		LnTotalChol:      1.12370,
		LnHDL:            -0.93263,
		LnSBPUntreated:   1.93303,
		LnSBPTreated:     1.99881,
		Smoker:           0.65451,
		Diabetes:         0.57367,
		MeanTerms:        23.9802,
		BaselineSurvival: 0.88936,
	},
	models.SexFemale: {
		LnAge:            2.32888,
		LnTotalChol:      1.20904,
		LnHDL:            -0.70833,
		LnSBPUntreated:   2.76157,
		LnSBPTreated:     2.82263,
		Smoker:           0.52873,
		Diabetes:         0.69154,
		MeanTerms:        26.1931,
		BaselineSurvival: 0.95012,
	},
}

// Framingham computes the 10-year general CVD risk and applies the
// Lp(a) modifier when an Lp(a) value is present.
//
// Required fields: age, sex, systolic BP, total and HDL cholesterol.
// Their absence is fatal to the calculation, never defaulted.
func Framingham(p *models.PatientInput) (*models.RiskResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	coef := framinghamBySex[p.Sex]

	totalMmol, hdlMmol, err := p.CholesterolMmol()
	if err != nil {
		return nil, err
	}
	totalMg, err := units.Convert(totalMmol, units.Cholesterol, units.MmolPerL, units.MgPerDL)
	if err != nil {
		return nil, err
	}
	hdlMg, err := units.Convert(hdlMmol, units.Cholesterol, units.MmolPerL, units.MgPerDL)
	if err != nil {
		return nil, err
	}

	sbpCoef := coef.LnSBPUntreated
	if p.TreatedHypertension {
		sbpCoef = coef.LnSBPTreated
	}

	breakdown := map[string]float64{
		"age":               coef.LnAge * math.Log(float64(p.Age)),
		"total_cholesterol": coef.LnTotalChol * math.Log(totalMg),
		"hdl_cholesterol":   coef.LnHDL * math.Log(hdlMg),
		"sbp":               sbpCoef * math.Log(p.SystolicBP),
	}
	if p.Smoking.IsCurrent() {
		breakdown["smoking"] = coef.Smoker
	}
	if p.Diabetes.Present() {
		breakdown["diabetes"] = coef.Diabetes
	}

	var predictor float64
	for _, term := range breakdown {
		predictor += term
	}

	baseRisk := 100 * (1 - math.Pow(coef.BaselineSurvival, math.Exp(predictor-coef.MeanTerms)))
	baseRisk = clampPercent(baseRisk)

	return finalize(models.AlgorithmFramingham, baseRisk, breakdown, p)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
