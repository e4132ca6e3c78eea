package models

import (
	"fmt"

	"github.com/mkoziy/cardiorisk/internal/units"
)

// MissingInputError reports a field the requested calculation cannot
// proceed without. Missing required fields are fatal to the calculation;
// they are never silently defaulted.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %q is missing or invalid", e.Field)
}

// PatientInput aggregates the demographic, vital, lab and comorbidity
// fields consumed by the risk calculators. Callers construct one fresh
// per calculation; the engine never retains or mutates it.
//
// Optional measurements are pointers: nil means not measured, which is
// distinct from a measured zero.
type PatientInput struct {
	Age       int             `yaml:"age" json:"age"`
	Sex       Sex             `yaml:"sex" json:"sex"`
	Ethnicity Ethnicity       `yaml:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	Smoking   SmokingCategory `yaml:"smoking,omitempty" json:"smoking,omitempty"`

	SystolicBP     float64  `yaml:"sbp" json:"sbp"`
	DiastolicBP    *float64 `yaml:"dbp,omitempty" json:"dbp,omitempty"`
	SBPVariability *float64 `yaml:"sbp_variability,omitempty" json:"sbp_variability,omitempty"`

	HeightCm *float64 `yaml:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKg *float64 `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	BMI      *float64 `yaml:"bmi,omitempty" json:"bmi,omitempty"`

	// Cholesterol values are interpreted in CholesterolUnit
	// (mmol/L when empty).
	TotalCholesterol *float64   `yaml:"total_cholesterol,omitempty" json:"total_cholesterol,omitempty"`
	HDLCholesterol   *float64   `yaml:"hdl_cholesterol,omitempty" json:"hdl_cholesterol,omitempty"`
	LDLCholesterol   *float64   `yaml:"ldl_cholesterol,omitempty" json:"ldl_cholesterol,omitempty"`
	CholesterolUnit  units.Unit `yaml:"cholesterol_unit,omitempty" json:"cholesterol_unit,omitempty"`
	CholesterolRatio *float64   `yaml:"cholesterol_ratio,omitempty" json:"cholesterol_ratio,omitempty"`

	Lpa     *float64   `yaml:"lpa,omitempty" json:"lpa,omitempty"`
	LpaUnit units.Unit `yaml:"lpa_unit,omitempty" json:"lpa_unit,omitempty"`

	Diabetes               DiabetesType `yaml:"diabetes,omitempty" json:"diabetes,omitempty"`
	TreatedHypertension    bool         `yaml:"treated_hypertension,omitempty" json:"treated_hypertension,omitempty"`
	AtrialFibrillation     bool         `yaml:"atrial_fibrillation,omitempty" json:"atrial_fibrillation,omitempty"`
	RheumatoidArthritis    bool         `yaml:"rheumatoid_arthritis,omitempty" json:"rheumatoid_arthritis,omitempty"`
	ChronicKidneyDisease   bool         `yaml:"chronic_kidney_disease,omitempty" json:"chronic_kidney_disease,omitempty"`
	FamilyHistoryCVD       bool         `yaml:"family_history_cvd,omitempty" json:"family_history_cvd,omitempty"`
	Migraine               bool         `yaml:"migraine,omitempty" json:"migraine,omitempty"`
	SLE                    bool         `yaml:"sle,omitempty" json:"sle,omitempty"`
	ErectileDysfunction    bool         `yaml:"erectile_dysfunction,omitempty" json:"erectile_dysfunction,omitempty"`
	Corticosteroids        bool         `yaml:"corticosteroids,omitempty" json:"corticosteroids,omitempty"`
	AtypicalAntipsychotics bool         `yaml:"atypical_antipsychotics,omitempty" json:"atypical_antipsychotics,omitempty"`

	// TownsendScore is the deprivation score. Nil defaults to 0, the
	// population median, which is the one clinically defensible default
	// in the input set.
	TownsendScore *float64 `yaml:"townsend_score,omitempty" json:"townsend_score,omitempty"`
}

// Validate checks the structural requirements shared by both
// calculators. Algorithm-specific requirements are checked by the
// calculators themselves.
func (p *PatientInput) Validate() error {
	if p.Age <= 0 {
		return &MissingInputError{Field: "age"}
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return &MissingInputError{Field: "sex"}
	}
	if p.SystolicBP <= 0 {
		return &MissingInputError{Field: "sbp"}
	}
	return nil
}

// DerivedBMI returns the BMI, deriving it from height and weight when
// not supplied directly.
func (p *PatientInput) DerivedBMI() (float64, bool) {
	if p.BMI != nil && *p.BMI > 0 {
		return *p.BMI, true
	}
	if p.HeightCm != nil && p.WeightKg != nil && *p.HeightCm > 0 && *p.WeightKg > 0 {
		m := *p.HeightCm / 100
		return *p.WeightKg / (m * m), true
	}
	return 0, false
}

// CholesterolMmol returns total and HDL cholesterol in mmol/L,
// converting from the recorded unit when needed.
func (p *PatientInput) CholesterolMmol() (total, hdl float64, err error) {
	if p.TotalCholesterol == nil || *p.TotalCholesterol <= 0 {
		return 0, 0, &MissingInputError{Field: "total_cholesterol"}
	}
	if p.HDLCholesterol == nil || *p.HDLCholesterol <= 0 {
		return 0, 0, &MissingInputError{Field: "hdl_cholesterol"}
	}
	unit := p.CholesterolUnit
	if unit == "" {
		unit = units.MmolPerL
	}
	total, err = units.Convert(*p.TotalCholesterol, units.Cholesterol, unit, units.MmolPerL)
	if err != nil {
		return 0, 0, err
	}
	hdl, err = units.Convert(*p.HDLCholesterol, units.Cholesterol, unit, units.MmolPerL)
	if err != nil {
		return 0, 0, err
	}
	return total, hdl, nil
}

// LpaMgDL returns the Lp(a) value in mg/dL when present, converting
// from nmol/L if that is how it was measured.
func (p *PatientInput) LpaMgDL() (float64, bool, error) {
	if p.Lpa == nil {
		return 0, false, nil
	}
	unit := p.LpaUnit
	if unit == "" {
		unit = units.MgPerDL
	}
	v, err := units.Convert(*p.Lpa, units.Lipoprotein, unit, units.MgPerDL)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
