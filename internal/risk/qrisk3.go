package risk

import (
	"math"

	"github.com/mkoziy/cardiorisk/internal/models"
)

// QRISK3 accepts ages within the algorithm's published validity window.
const (
	qriskMinAge = 25
	qriskMaxAge = 84
)

// QRISK3 computes the 10-year cardiovascular risk using the QRISK3-2017
// sex-specific algorithm and applies the Lp(a) modifier when an Lp(a)
// value is present.
//
// Required fields: age (25-84), sex, systolic BP, BMI (or height and
// weight to derive it), and cholesterol ratio (or total and HDL
// cholesterol to derive it). The Townsend deprivation score and SBP
// variability default to 0, the population reference, when unmeasured.
func QRISK3(p *models.PatientInput) (*models.RiskResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Age < qriskMinAge || p.Age > qriskMaxAge {
		return nil, &models.MissingInputError{Field: "age"}
	}
	coef := qriskBySex[p.Sex]

	bmi, ok := p.DerivedBMI()
	if !ok {
		return nil, &models.MissingInputError{Field: "bmi"}
	}

	ratio, err := cholesterolRatio(p)
	if err != nil {
		return nil, err
	}

	// Fractional-polynomial transforms of age and BMI, then centering
	// on the derivation-cohort means. The age basis differs per sex.
	dage := float64(p.Age) / 10
	age1, age2 := ageTerms(p.Sex, dage)
	age1 -= coef.AgeMean1
	age2 -= coef.AgeMean2

	dbmi := bmi / 10
	bmi1 := math.Pow(dbmi, -2)
	bmi2 := math.Pow(dbmi, -2) * math.Log(dbmi)
	bmi1 -= coef.BMIMean1
	bmi2 -= coef.BMIMean2

	ratio -= coef.RatioMean
	sbp := p.SystolicBP - coef.SBPMean
	sbpSD := optional(p.SBPVariability) - coef.SBPSDMean
	town := optional(p.TownsendScore) - coef.TownsendMean

	smoke := p.Smoking.Code()
	eth := p.Ethnicity.Code()

	breakdown := map[string]float64{
		"age":             coef.Age1*age1 + coef.Age2*age2,
		"bmi":             coef.BMI1*bmi1 + coef.BMI2*bmi2,
		"cholesterol_ratio": coef.Ratio * ratio,
		"sbp":             coef.SBP * sbp,
		"sbp_variability": coef.SBPSD * sbpSD,
		"townsend":        coef.Townsend * town,
		"ethnicity":       coef.Ethnicity[eth],
		"smoking":         coef.Smoking[smoke],
		"conditions":      conditionSum(p, coef.Conditions),
		"interactions": age1*interactionSum(p, smoke, bmi1, bmi2, sbp, town, coef.AgeInteractions1) +
			age2*interactionSum(p, smoke, bmi1, bmi2, sbp, town, coef.AgeInteractions2),
	}

	var predictor float64
	for _, term := range breakdown {
		predictor += term
	}

	baseRisk := 100 * (1 - math.Pow(coef.BaselineSurvival, math.Exp(predictor)))
	baseRisk = clampPercent(baseRisk)

	return finalize(models.AlgorithmQRISK3, baseRisk, breakdown, p)
}

func ageTerms(sex models.Sex, dage float64) (age1, age2 float64) {
	if sex == models.SexFemale {
		return math.Pow(dage, -2), dage
	}
	return math.Pow(dage, -1), math.Pow(dage, 3)
}

func cholesterolRatio(p *models.PatientInput) (float64, error) {
	if p.CholesterolRatio != nil && *p.CholesterolRatio > 0 {
		return *p.CholesterolRatio, nil
	}
	total, hdl, err := p.CholesterolMmol()
	if err != nil {
		return 0, &models.MissingInputError{Field: "cholesterol_ratio"}
	}
	return total / hdl, nil
}

func optional(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func conditionSum(p *models.PatientInput, c qriskConditionCoefficients) float64 {
	var sum float64
	if p.AtrialFibrillation {
		sum += c.AtrialFibrillation
	}
	if p.AtypicalAntipsychotics {
		sum += c.AtypicalAntipsychotics
	}
	if p.Corticosteroids {
		sum += c.Corticosteroids
	}
	if p.ErectileDysfunction {
		sum += c.ErectileDysfunction
	}
	if p.Migraine {
		sum += c.Migraine
	}
	if p.RheumatoidArthritis {
		sum += c.RheumatoidArthritis
	}
	if p.ChronicKidneyDisease {
		sum += c.ChronicKidneyDisease
	}
	if p.SLE {
		sum += c.SLE
	}
	if p.TreatedHypertension {
		sum += c.TreatedHypertension
	}
	if p.Diabetes == models.DiabetesType1 {
		sum += c.Type1Diabetes
	}
	if p.Diabetes == models.DiabetesType2 {
		sum += c.Type2Diabetes
	}
	if p.FamilyHistoryCVD {
		sum += c.FamilyHistoryCVD
	}
	return sum
}

// interactionSum returns the part of an age-interaction block that is
// multiplied by the corresponding centered age term. bmi1/bmi2/sbp/town
// are already centered.
func interactionSum(p *models.PatientInput, smoke int, bmi1, bmi2, sbp, town float64, c qriskInteractionCoefficients) float64 {
	sum := c.Smoking[smoke]
	if p.AtrialFibrillation {
		sum += c.AtrialFibrillation
	}
	if p.Corticosteroids {
		sum += c.Corticosteroids
	}
	if p.ErectileDysfunction {
		sum += c.ErectileDysfunction
	}
	if p.Migraine {
		sum += c.Migraine
	}
	if p.ChronicKidneyDisease {
		sum += c.ChronicKidneyDisease
	}
	if p.SLE {
		sum += c.SLE
	}
	if p.TreatedHypertension {
		sum += c.TreatedHypertension
	}
	if p.Diabetes == models.DiabetesType1 {
		sum += c.Type1Diabetes
	}
	if p.Diabetes == models.DiabetesType2 {
		sum += c.Type2Diabetes
	}
	if p.FamilyHistoryCVD {
		sum += c.FamilyHistoryCVD
	}
	sum += c.BMI1 * bmi1
	sum += c.BMI2 * bmi2
	sum += c.SBP * sbp
	sum += c.Townsend * town
	return sum
}
