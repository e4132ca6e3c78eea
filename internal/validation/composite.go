package validation

import (
	"fmt"
	"strings"
)

// Blood pressure categories. The ladder below reproduces the historical
// classification of this calculator, including its mixed AND/OR
// conditions for the hypertension stages. Boundary combinations are
// pinned by tests; do not reorder the cases.
const (
	BPNormal   = "Normal"
	BPElevated = "Elevated"
	BPStage1   = "Stage 1 Hypertension"
	BPStage2   = "Stage 2 Hypertension"
	BPCrisis   = "Hypertensive Crisis"
)

// BloodPressureCategory classifies an SBP/DBP pair.
func BloodPressureCategory(sbp, dbp float64) string {
	switch {
	case sbp < 120 && dbp < 80:
		return BPNormal
	case sbp < 130 && dbp < 80:
		return BPElevated
	case sbp < 140 || dbp < 90:
		return BPStage1
	case sbp < 180 || dbp < 120:
		return BPStage2
	default:
		return BPCrisis
	}
}

// ValidateBloodPressure validates systolic and diastolic pressure
// individually and as a pair.
//
// When both components pass individually but sbp <= dbp, the combined
// result is overridden to invalid and critical: the impossible
// relationship wins over the individually valid components.
func (v *Validator) ValidateBloodPressure(sbp, dbp float64) Result {
	sr := v.ValidateValue("sbp", sbp, Options{})
	dr := v.ValidateValue("dbp", dbp, Options{})

	combined := Result{
		Valid:    sr.Valid && dr.Valid,
		Warning:  sr.Warning || dr.Warning,
		Critical: sr.Critical || dr.Critical,
		Details:  map[string]interface{}{"sbp": sbp, "dbp": dbp},
	}

	var messages []string
	if sr.Message != "" {
		messages = append(messages, sr.Message)
	}
	if dr.Message != "" {
		messages = append(messages, dr.Message)
	}

	if combined.Valid {
		if sbp <= dbp {
			return Result{
				Valid:    false,
				Critical: true,
				Message:  "SBP must be greater than DBP",
				Details:  map[string]interface{}{"sbp": sbp, "dbp": dbp},
			}
		}

		pulsePressure := sbp - dbp
		combined.Details["pulse_pressure"] = pulsePressure
		if pulsePressure < 20 {
			messages = append(messages, fmt.Sprintf("Pulse pressure of %g mmHg is unusually narrow (below 20)", pulsePressure))
			combined.Warning = true
		} else if pulsePressure > 100 {
			messages = append(messages, fmt.Sprintf("Pulse pressure of %g mmHg is unusually wide (above 100)", pulsePressure))
			combined.Warning = true
		}

		category := BloodPressureCategory(sbp, dbp)
		combined.Details["category"] = category
		if category != BPNormal {
			messages = append(messages, "Blood pressure category: "+category)
			combined.Warning = true
		}
	}

	combined.Message = strings.Join(messages, "; ")
	return combined
}

// ValidateCholesterolRatio checks the total/HDL cholesterol ratio.
// Both inputs must be present and non-zero.
func (v *Validator) ValidateCholesterolRatio(total, hdl float64) Result {
	if total <= 0 || hdl <= 0 {
		return Result{
			Valid:   false,
			Message: "Total and HDL cholesterol are required to compute a ratio",
		}
	}

	ratio := total / hdl
	details := map[string]interface{}{"ratio": ratio}

	switch {
	case ratio < 2.0:
		return Result{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("Cholesterol ratio of %.1f is unusually low", ratio),
			Details: details,
		}
	case ratio > 6.0:
		return Result{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("Cholesterol ratio of %.1f indicates high cardiovascular risk", ratio),
			Details: details,
		}
	case ratio > 5.0:
		return Result{
			Valid:   true,
			Warning: true,
			Message: fmt.Sprintf("Cholesterol ratio of %.1f is elevated", ratio),
			Details: details,
		}
	}

	return Result{Valid: true, Details: details}
}

// ValidateBMI derives BMI from weight (kg) and height (cm) and
// classifies it via the range table.
func (v *Validator) ValidateBMI(weightKg, heightCm float64) Result {
	if weightKg <= 0 || heightCm <= 0 {
		return Result{
			Valid:   false,
			Message: "Weight and height are required to compute BMI",
		}
	}

	m := heightCm / 100
	bmi := weightKg / (m * m)

	result := v.ValidateValue("bmi", bmi, Options{})
	if result.Details == nil {
		result.Details = map[string]interface{}{}
	}
	result.Details["bmi"] = bmi
	return result
}
