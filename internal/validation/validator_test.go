package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/mkoziy/cardiorisk/internal/models"
)

func TestValidateValueUnknownType(t *testing.T) {
	r := NewDefault().ValidateValue("shoe_size", 44, Options{})
	if !r.Valid || r.Warning || r.Critical {
		t.Fatalf("unknown type should pass permissively: %+v", r)
	}
}

func TestValidateValueNotANumber(t *testing.T) {
	v := NewDefault()
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		r := v.ValidateValue("bmi", bad, Options{})
		if r.Valid {
			t.Fatalf("expected invalid for %v", bad)
		}
		if !strings.Contains(r.Message, "must be a valid number") {
			t.Fatalf("unexpected message: %q", r.Message)
		}
	}
}

func TestValidateValueImpossible(t *testing.T) {
	r := NewDefault().ValidateValue("bmi", 5, Options{})
	if r.Valid {
		t.Fatalf("BMI 5 is below the absolute minimum, expected invalid: %+v", r)
	}
	if !r.Critical {
		t.Fatalf("impossible values are critical: %+v", r)
	}
	if !strings.Contains(r.Message, "physiologically impossible") {
		t.Fatalf("unexpected message: %q", r.Message)
	}
}

func TestValidateValueCriticalButPossible(t *testing.T) {
	// SBP 240 is possible (max 300) but beyond the critical max of 220.
	r := NewDefault().ValidateValue("sbp", 240, Options{})
	if !r.Valid {
		t.Fatalf("critical values remain valid: %+v", r)
	}
	if !r.Critical {
		t.Fatalf("expected critical flag: %+v", r)
	}
	if !strings.Contains(r.Message, "critically abnormal") {
		t.Fatalf("unexpected message: %q", r.Message)
	}
}

func TestValidateValueBMICategories(t *testing.T) {
	v := NewDefault()
	cases := []struct {
		bmi  float64
		want string
	}{
		{16, "Underweight"},
		{27, "Overweight"},
		{33, "Obese"},
		{45, "Morbidly obese"},
	}
	for _, c := range cases {
		r := v.ValidateValue("bmi", c.bmi, Options{})
		if !r.Valid || !r.Warning {
			t.Fatalf("BMI %g: expected valid warning, got %+v", c.bmi, r)
		}
		if !strings.Contains(r.Message, c.want) {
			t.Fatalf("BMI %g: expected %q in %q", c.bmi, c.want, r.Message)
		}
	}

	if r := v.ValidateValue("bmi", 22, Options{}); r.Warning || r.Critical {
		t.Fatalf("BMI 22 should be clean: %+v", r)
	}

	// The ladder is exclusive: 45 must carry only the most severe label.
	if r := v.ValidateValue("bmi", 45, Options{}); strings.Contains(r.Message, "Obese (BMI 30") {
		t.Fatalf("ladder should be exclusive, got %q", r.Message)
	}
}

func TestValidateValueCKDStages(t *testing.T) {
	v := NewDefault()
	cases := []struct {
		egfr float64
		want string
	}{
		{10, "CKD stage 5"},
		{25, "CKD stage 4"},
		{45, "CKD stage 3"},
	}
	for _, c := range cases {
		r := v.ValidateValue("egfr", c.egfr, Options{})
		if !strings.Contains(r.Message, c.want) {
			t.Fatalf("eGFR %g: expected %q in %q", c.egfr, c.want, r.Message)
		}
	}
	if r := v.ValidateValue("egfr", 90, Options{}); r.Warning {
		t.Fatalf("eGFR 90 should be clean: %+v", r)
	}
}

func TestValidateValueDiabetesThresholds(t *testing.T) {
	v := NewDefault()
	if r := v.ValidateValue("glucose", 8.0, Options{}); !strings.Contains(r.Message, "diabetic range") {
		t.Fatalf("glucose 8.0: %+v", r)
	}
	if r := v.ValidateValue("glucose", 6.0, Options{}); !strings.Contains(r.Message, "pre-diabetic range") {
		t.Fatalf("glucose 6.0: %+v", r)
	}
	// The diabetic label wins over the pre-diabetic one.
	if r := v.ValidateValue("hba1c", 7.2, Options{}); strings.Contains(r.Message, "pre-diabetic") {
		t.Fatalf("hba1c 7.2 should only carry the diabetic label: %q", r.Message)
	}
}

func TestValidateValueGenderSpecific(t *testing.T) {
	v := NewDefault()

	male := v.ValidateValue("waist", 105, Options{Gender: models.SexMale})
	if !male.Warning || !strings.Contains(male.Message, "male") {
		t.Fatalf("waist 105 male: %+v", male)
	}

	female := v.ValidateValue("waist", 95, Options{Gender: models.SexFemale})
	if !female.Warning {
		t.Fatalf("waist 95 female should warn (threshold 88): %+v", female)
	}

	// Without gender the gender-specific checks are skipped silently.
	none := v.ValidateValue("waist", 105, Options{})
	if none.Warning {
		t.Fatalf("waist without gender should skip the check: %+v", none)
	}

	creat := v.ValidateValue("creatinine", 100, Options{Gender: models.SexFemale})
	if !creat.Warning || !strings.Contains(creat.Message, "female") {
		t.Fatalf("creatinine 100 female (normal 45-90): %+v", creat)
	}
	if r := v.ValidateValue("creatinine", 100, Options{Gender: models.SexMale}); r.Warning {
		t.Fatalf("creatinine 100 male is normal: %+v", r)
	}
}

func TestValidateBloodPressureNormal(t *testing.T) {
	r := NewDefault().ValidateBloodPressure(110, 70)
	if !r.Valid || r.Warning || r.Critical {
		t.Fatalf("110/70 should be clean: %+v", r)
	}
	if strings.Contains(r.Message, "Normal") {
		t.Fatalf("the Normal category must not be appended as a warning: %q", r.Message)
	}
}

func TestValidateBloodPressureInverted(t *testing.T) {
	r := NewDefault().ValidateBloodPressure(100, 110)
	if r.Valid {
		t.Fatalf("sbp <= dbp must be invalid: %+v", r)
	}
	if !r.Critical {
		t.Fatalf("inverted BP is critical: %+v", r)
	}
	if !strings.Contains(r.Message, "SBP must be greater than DBP") {
		t.Fatalf("unexpected message: %q", r.Message)
	}
}

func TestValidateBloodPressurePulsePressure(t *testing.T) {
	v := NewDefault()
	if r := v.ValidateBloodPressure(96, 82); !strings.Contains(r.Message, "unusually narrow") {
		t.Fatalf("96/82 pulse pressure 14: %+v", r)
	}
	if r := v.ValidateBloodPressure(190, 85); !strings.Contains(r.Message, "unusually wide") {
		t.Fatalf("190/85 pulse pressure 105: %+v", r)
	}
}

func TestBloodPressureCategoryLadder(t *testing.T) {
	cases := []struct {
		sbp, dbp float64
		want     string
	}{
		{110, 70, BPNormal},
		{119, 79, BPNormal},
		{125, 78, BPElevated},
		{129, 79, BPElevated},
		{120, 80, BPStage1},
		{135, 85, BPStage1},
		// Historical ladder quirk: 135/95 falls through Normal and
		// Elevated, then matches Stage 1 via sbp < 140.
		{135, 95, BPStage1},
		{145, 85, BPStage1},
		{150, 95, BPStage2},
		{179, 119, BPStage2},
		{140, 125, BPStage2},
		{185, 125, BPCrisis},
	}
	for _, c := range cases {
		if got := BloodPressureCategory(c.sbp, c.dbp); got != c.want {
			t.Fatalf("%g/%g: expected %s, got %s", c.sbp, c.dbp, c.want, got)
		}
	}
}

func TestValidateCholesterolRatio(t *testing.T) {
	v := NewDefault()

	if r := v.ValidateCholesterolRatio(0, 1.2); r.Valid {
		t.Fatalf("zero total must be invalid: %+v", r)
	}
	if r := v.ValidateCholesterolRatio(5.0, 0); r.Valid {
		t.Fatalf("zero HDL must be invalid: %+v", r)
	}

	if r := v.ValidateCholesterolRatio(2.0, 1.3); !strings.Contains(r.Message, "unusually low") {
		t.Fatalf("ratio 1.54: %+v", r)
	}
	if r := v.ValidateCholesterolRatio(7.8, 1.2); !strings.Contains(r.Message, "high cardiovascular risk") {
		t.Fatalf("ratio 6.5: %+v", r)
	}
	if r := v.ValidateCholesterolRatio(6.6, 1.2); !strings.Contains(r.Message, "elevated") {
		t.Fatalf("ratio 5.5: %+v", r)
	}
	if r := v.ValidateCholesterolRatio(5.2, 1.3); r.Warning {
		t.Fatalf("ratio 4.0 should be clean: %+v", r)
	}
}

func TestValidateBMIComposite(t *testing.T) {
	v := NewDefault()

	if r := v.ValidateBMI(0, 170); r.Valid {
		t.Fatalf("zero weight must be invalid: %+v", r)
	}
	if r := v.ValidateBMI(70, 0); r.Valid {
		t.Fatalf("zero height must be invalid: %+v", r)
	}

	r := v.ValidateBMI(70, 175)
	if !r.Valid || r.Warning {
		t.Fatalf("70kg/175cm is BMI 22.9, should be clean: %+v", r)
	}
	bmi, ok := r.Details["bmi"].(float64)
	if !ok || math.Abs(bmi-22.857) > 0.01 {
		t.Fatalf("expected derived BMI about 22.86, got %v", r.Details["bmi"])
	}

	if r := v.ValidateBMI(130, 170); !strings.Contains(r.Message, "Morbidly obese") {
		t.Fatalf("130kg/170cm is BMI 45: %+v", r)
	}
}
