package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/units"
)

func fptr(v float64) *float64 { return &v }

// The worked example from D'Agostino et al. (Circulation 2008): a
// 61-year-old woman, total cholesterol 180 mg/dL, HDL 47 mg/dL,
// untreated SBP 124 mmHg, current smoker, no diabetes. Published
// 10-year risk: 10.5%.
func TestFraminghamPublishedExample(t *testing.T) {
	p := &models.PatientInput{
		Age:              61,
		Sex:              models.SexFemale,
		SystolicBP:       124,
		TotalCholesterol: fptr(180),
		HDLCholesterol:   fptr(47),
		CholesterolUnit:  units.MgPerDL,
		Smoking:          models.SmokingLight,
	}
	res, err := Framingham(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.BaseRisk-10.5) > 0.3 {
		t.Fatalf("expected about 10.5%%, got %g", res.BaseRisk)
	}
	if res.Category != models.RiskModerate {
		t.Fatalf("expected moderate category, got %s", res.Category)
	}
	if res.LpaModifier != 1.0 {
		t.Fatalf("no Lp(a) supplied, modifier must be 1.0: %g", res.LpaModifier)
	}
}

func framinghamBase() *models.PatientInput {
	return &models.PatientInput{
		Age:              55,
		Sex:              models.SexMale,
		SystolicBP:       130,
		TotalCholesterol: fptr(6.2),
		HDLCholesterol:   fptr(1.3),
	}
}

func TestFraminghamMonotonicity(t *testing.T) {
	base, err := Framingham(framinghamBase())
	if err != nil {
		t.Fatalf("base: %v", err)
	}

	older := framinghamBase()
	older.Age = 65
	higherSBP := framinghamBase()
	higherSBP.SystolicBP = 150
	smoker := framinghamBase()
	smoker.Smoking = models.SmokingModerate
	diabetic := framinghamBase()
	diabetic.Diabetes = models.DiabetesType2

	for name, p := range map[string]*models.PatientInput{
		"older": older, "higher sbp": higherSBP, "smoker": smoker, "diabetic": diabetic,
	} {
		res, err := Framingham(p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if res.BaseRisk < base.BaseRisk {
			t.Fatalf("%s decreased base risk: %g -> %g", name, base.BaseRisk, res.BaseRisk)
		}
	}
}

func TestFraminghamLpaComposition(t *testing.T) {
	p := framinghamBase()
	p.Lpa = fptr(75)
	res, err := Framingham(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LpaModifier != 1.45 {
		t.Fatalf("Lp(a) 75 mg/dL: expected modifier 1.45, got %g", res.LpaModifier)
	}
	if res.ModifiedRisk != res.BaseRisk*res.LpaModifier {
		t.Fatalf("modified risk must equal base*modifier exactly: %g != %g*%g",
			res.ModifiedRisk, res.BaseRisk, res.LpaModifier)
	}
}

func TestFraminghamLpaNmolUnit(t *testing.T) {
	p := framinghamBase()
	p.Lpa = fptr(250)
	p.LpaUnit = units.NmolPerL // 250 nmol/L = 100 mg/dL
	res, err := Framingham(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.LpaModifier-1.6) > 1e-12 {
		t.Fatalf("expected modifier 1.6, got %g", res.LpaModifier)
	}
}

func TestFraminghamMissingInputs(t *testing.T) {
	cases := map[string]func(*models.PatientInput){
		"age":               func(p *models.PatientInput) { p.Age = 0 },
		"sex":               func(p *models.PatientInput) { p.Sex = "" },
		"sbp":               func(p *models.PatientInput) { p.SystolicBP = 0 },
		"total_cholesterol": func(p *models.PatientInput) { p.TotalCholesterol = nil },
		"hdl_cholesterol":   func(p *models.PatientInput) { p.HDLCholesterol = nil },
	}
	for field, mutate := range cases {
		p := framinghamBase()
		mutate(p)
		_, err := Framingham(p)
		if err == nil {
			t.Fatalf("%s: expected error", field)
		}
		var missing *models.MissingInputError
		if !errors.As(err, &missing) {
			t.Fatalf("%s: expected MissingInputError, got %T", field, err)
		}
		if missing.Field != field {
			t.Fatalf("expected error to name %q, got %q", field, missing.Field)
		}
	}
}

func TestFraminghamDeterministic(t *testing.T) {
	a, err := Framingham(framinghamBase())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := Framingham(framinghamBase())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if a.BaseRisk != b.BaseRisk || a.ModifiedRisk != b.ModifiedRisk {
		t.Fatalf("identical inputs must produce identical outputs: %+v vs %+v", a, b)
	}
}
