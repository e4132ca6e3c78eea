// Package validation classifies measurements against the physiological
// range table. Results are advisory: a critical or even invalid finding
// never stops the risk calculators, which check their own structural
// requirements independently.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/ranges"
)

// Result is the outcome of one validation check.
//
// Valid is false only for malformed input or values outside the
// absolute physiological range. In-range but alarming values are
// Valid with Critical set; soft threshold breaches are Valid with
// Warning set.
type Result struct {
	Valid    bool                   `json:"is_valid"`
	Warning  bool                   `json:"is_warning"`
	Critical bool                   `json:"is_critical"`
	Message  string                 `json:"message,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// Options carries optional context for gender-specific thresholds.
type Options struct {
	// Gender enables the gender-specific checks (waist circumference,
	// creatinine). When unset those checks are skipped silently.
	Gender models.Sex
}

// Validator checks measurements against a range table.
type Validator struct {
	table *ranges.Table
}

// New creates a validator over the given range table.
func New(table *ranges.Table) *Validator {
	return &Validator{table: table}
}

// NewDefault creates a validator over the built-in range table.
func NewDefault() *Validator {
	return New(ranges.Default())
}

// ValidateValue classifies a single measurement.
//
// A measurement type with no registered range passes permissively: an
// unknown quantity is assumed acceptable rather than rejected.
func (v *Validator) ValidateValue(typ string, value float64, opts Options) Result {
	def, ok := v.table.Get(typ)
	if !ok {
		return Result{Valid: true}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Result{
			Valid:   false,
			Message: fmt.Sprintf("%s must be a valid number", def.Description),
		}
	}

	if value < def.Min || value > def.Max {
		return Result{
			Valid:    false,
			Critical: true,
			Message: fmt.Sprintf("%s of %g is physiologically impossible (valid range %g-%g %s)",
				def.Description, value, def.Min, def.Max, def.Unit),
			Details: map[string]interface{}{"value": value, "min": def.Min, "max": def.Max},
		}
	}

	if value < def.CriticalMin || value > def.CriticalMax {
		return Result{
			Valid:    true,
			Critical: true,
			Message: fmt.Sprintf("%s of %g is critically abnormal (critical range %g-%g %s)",
				def.Description, value, def.CriticalMin, def.CriticalMax, def.Unit),
			Details: map[string]interface{}{"value": value, "critical_min": def.CriticalMin, "critical_max": def.CriticalMax},
		}
	}

	warnings := collectWarnings(typ, value, def, opts)
	if len(warnings) > 0 {
		return Result{
			Valid:   true,
			Warning: true,
			Message: strings.Join(warnings, "; "),
			Details: map[string]interface{}{"value": value},
		}
	}

	return Result{Valid: true}
}

func collectWarnings(typ string, value float64, def *ranges.RangeDefinition, opts Options) []string {
	var warnings []string

	if def.LowThreshold != nil && value < *def.LowThreshold {
		warnings = append(warnings, fmt.Sprintf("%s of %g is low (below %g %s)",
			def.Description, value, *def.LowThreshold, def.Unit))
	}
	if def.HighThreshold != nil && value > *def.HighThreshold {
		warnings = append(warnings, fmt.Sprintf("%s of %g is elevated (above %g %s)",
			def.Description, value, *def.HighThreshold, def.Unit))
	}
	if def.TargetMin != nil && value < *def.TargetMin {
		warnings = append(warnings, fmt.Sprintf("%s of %g is below the target range (at least %g %s)",
			def.Description, value, *def.TargetMin, def.Unit))
	}
	if def.TargetMax != nil && value > *def.TargetMax {
		warnings = append(warnings, fmt.Sprintf("%s of %g is above the target range (at most %g %s)",
			def.Description, value, *def.TargetMax, def.Unit))
	}
	if def.HighRiskMin != nil && value >= *def.HighRiskMin {
		warnings = append(warnings, fmt.Sprintf("%s of %g indicates high cardiovascular risk (%g %s or above)",
			def.Description, value, *def.HighRiskMin, def.Unit))
	}

	// Diabetes staging applies to any type carrying the thresholds
	// (fasting glucose, HbA1c). The diabetic label wins over pre-diabetic.
	if def.DiabetesThreshold != nil && value >= *def.DiabetesThreshold {
		warnings = append(warnings, fmt.Sprintf("%s of %g is in the diabetic range (%g %s or above)",
			def.Description, value, *def.DiabetesThreshold, def.Unit))
	} else if def.PreDiabetesMin != nil && value >= *def.PreDiabetesMin {
		warnings = append(warnings, fmt.Sprintf("%s of %g is in the pre-diabetic range (%g-%g %s)",
			def.Description, value, *def.PreDiabetesMin, diabetesUpper(def), def.Unit))
	}

	if w := categoricalWarning(typ, value); w != "" {
		warnings = append(warnings, w)
	}

	if w := genderWarning(value, def, opts.Gender); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

func diabetesUpper(def *ranges.RangeDefinition) float64 {
	if def.DiabetesThreshold != nil {
		return *def.DiabetesThreshold
	}
	return def.CriticalMax
}

// categoricalWarning evaluates the type-specific exclusive ladders.
// Each ladder is ordered most severe first so the worst label wins.
func categoricalWarning(typ string, value float64) string {
	switch typ {
	case "bmi":
		switch {
		case value >= 40:
			return "Morbidly obese (BMI 40 or above)"
		case value >= 30:
			return "Obese (BMI 30-39.9)"
		case value >= 25:
			return "Overweight (BMI 25-29.9)"
		case value < 18.5:
			return "Underweight (BMI below 18.5)"
		}
	case "egfr":
		switch {
		case value < 15:
			return "CKD stage 5, kidney failure (eGFR below 15)"
		case value < 30:
			return "CKD stage 4, severe reduction (eGFR below 30)"
		case value < 60:
			return "CKD stage 3, moderate reduction (eGFR below 60)"
		}
	}
	return ""
}

func genderWarning(value float64, def *ranges.RangeDefinition, gender models.Sex) string {
	var gt *ranges.GenderThresholds
	var label string
	switch gender {
	case models.SexMale:
		gt, label = def.Male, "male"
	case models.SexFemale:
		gt, label = def.Female, "female"
	default:
		return ""
	}
	if gt == nil {
		return ""
	}

	if gt.HighRiskMin != nil && value >= *gt.HighRiskMin {
		return fmt.Sprintf("%s of %g indicates high cardiovascular risk for %s patients (%g %s or above)",
			def.Description, value, label, *gt.HighRiskMin, def.Unit)
	}
	if gt.NormalMin != nil && gt.NormalMax != nil && (value < *gt.NormalMin || value > *gt.NormalMax) {
		return fmt.Sprintf("%s of %g is outside the normal %s range (%g-%g %s)",
			def.Description, value, label, *gt.NormalMin, *gt.NormalMax, def.Unit)
	}
	return ""
}
