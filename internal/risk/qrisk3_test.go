package risk

import (
	"errors"
	"testing"

	"github.com/mkoziy/cardiorisk/internal/models"
)

func qriskBase() *models.PatientInput {
	return &models.PatientInput{
		Age:              55,
		Sex:              models.SexFemale,
		Ethnicity:        models.EthnicityWhite,
		SystolicBP:       125,
		HeightCm:         fptr(165),
		WeightKg:         fptr(68),
		TotalCholesterol: fptr(5.2),
		HDLCholesterol:   fptr(1.3),
	}
}

func TestQRISK3HealthyLowRisk(t *testing.T) {
	p := qriskBase()
	p.Age = 30
	p.SystolicBP = 110
	res, err := QRISK3(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BaseRisk <= 0 || res.BaseRisk >= 2 {
		t.Fatalf("healthy 30-year-old woman: expected risk under 2%%, got %g", res.BaseRisk)
	}
	if res.Category != models.RiskLow {
		t.Fatalf("expected low category, got %s", res.Category)
	}
}

func TestQRISK3HighRiskProfile(t *testing.T) {
	p := &models.PatientInput{
		Age:                 80,
		Sex:                 models.SexMale,
		SystolicBP:          160,
		SBPVariability:      fptr(9),
		BMI:                 fptr(29),
		CholesterolRatio:    fptr(5.5),
		Smoking:             models.SmokingHeavy,
		Diabetes:            models.DiabetesType2,
		TreatedHypertension: true,
		FamilyHistoryCVD:    true,
	}
	res, err := QRISK3(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BaseRisk < 20 {
		t.Fatalf("expected high risk, got %g", res.BaseRisk)
	}
	if res.Category != models.RiskHigh {
		t.Fatalf("expected high category, got %s", res.Category)
	}
}

func TestQRISK3EthnicitySensitivity(t *testing.T) {
	white, err := QRISK3(qriskBase())
	if err != nil {
		t.Fatalf("white: %v", err)
	}

	indian := qriskBase()
	indian.Ethnicity = models.EthnicityIndian
	res, err := QRISK3(indian)
	if err != nil {
		t.Fatalf("indian: %v", err)
	}
	if res.BaseRisk <= white.BaseRisk {
		t.Fatalf("indian ethnicity must carry higher base risk: %g vs %g", res.BaseRisk, white.BaseRisk)
	}
}

func TestQRISK3Monotonicity(t *testing.T) {
	base, err := QRISK3(qriskBase())
	if err != nil {
		t.Fatalf("base: %v", err)
	}

	older := qriskBase()
	older.Age = 65
	higherSBP := qriskBase()
	higherSBP.SystolicBP = 150
	smoker := qriskBase()
	smoker.Smoking = models.SmokingHeavy
	diabetic := qriskBase()
	diabetic.Diabetes = models.DiabetesType2

	for name, p := range map[string]*models.PatientInput{
		"older": older, "higher sbp": higherSBP, "smoker": smoker, "diabetic": diabetic,
	} {
		res, err := QRISK3(p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if res.BaseRisk < base.BaseRisk {
			t.Fatalf("%s decreased base risk: %g -> %g", name, base.BaseRisk, res.BaseRisk)
		}
	}
}

func TestQRISK3SmokingCategoriesOrdered(t *testing.T) {
	categories := []models.SmokingCategory{
		models.SmokingNon, models.SmokingEx, models.SmokingLight,
		models.SmokingModerate, models.SmokingHeavy,
	}
	prev := -1.0
	for _, cat := range categories {
		p := qriskBase()
		p.Smoking = cat
		res, err := QRISK3(p)
		if err != nil {
			t.Fatalf("%s: %v", cat, err)
		}
		if res.BaseRisk < prev {
			t.Fatalf("risk decreased at smoking category %s", cat)
		}
		prev = res.BaseRisk
	}
}

func TestQRISK3DerivedInputs(t *testing.T) {
	// BMI given directly and derived from height/weight must agree.
	direct := qriskBase()
	direct.HeightCm = nil
	direct.WeightKg = nil
	direct.BMI = fptr(68 / (1.65 * 1.65))

	a, err := QRISK3(qriskBase())
	if err != nil {
		t.Fatalf("derived: %v", err)
	}
	b, err := QRISK3(direct)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	if a.BaseRisk != b.BaseRisk {
		t.Fatalf("BMI derivation mismatch: %g vs %g", a.BaseRisk, b.BaseRisk)
	}

	// Ratio given directly and derived from total/HDL must agree.
	ratio := qriskBase()
	ratio.TotalCholesterol = nil
	ratio.HDLCholesterol = nil
	ratio.CholesterolRatio = fptr(5.2 / 1.3)
	c, err := QRISK3(ratio)
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if c.BaseRisk != a.BaseRisk {
		t.Fatalf("ratio derivation mismatch: %g vs %g", c.BaseRisk, a.BaseRisk)
	}
}

func TestQRISK3LpaComposition(t *testing.T) {
	p := qriskBase()
	p.Lpa = fptr(150)
	res, err := QRISK3(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LpaModifier != 1.8 {
		t.Fatalf("Lp(a) 150 mg/dL: expected modifier 1.8, got %g", res.LpaModifier)
	}
	if res.ModifiedRisk != res.BaseRisk*res.LpaModifier {
		t.Fatalf("modified risk must equal base*modifier exactly")
	}
}

func TestQRISK3AgeWindow(t *testing.T) {
	for _, age := range []int{24, 85} {
		p := qriskBase()
		p.Age = age
		if _, err := QRISK3(p); err == nil {
			t.Fatalf("age %d is outside the validity window, expected error", age)
		}
	}
	for _, age := range []int{25, 84} {
		p := qriskBase()
		p.Age = age
		if _, err := QRISK3(p); err != nil {
			t.Fatalf("age %d: %v", age, err)
		}
	}
}

func TestQRISK3MissingInputs(t *testing.T) {
	noBMI := qriskBase()
	noBMI.HeightCm = nil
	_, err := QRISK3(noBMI)
	var missing *models.MissingInputError
	if !errors.As(err, &missing) || missing.Field != "bmi" {
		t.Fatalf("expected missing bmi, got %v", err)
	}

	noRatio := qriskBase()
	noRatio.HDLCholesterol = nil
	_, err = QRISK3(noRatio)
	if !errors.As(err, &missing) || missing.Field != "cholesterol_ratio" {
		t.Fatalf("expected missing cholesterol_ratio, got %v", err)
	}
}
