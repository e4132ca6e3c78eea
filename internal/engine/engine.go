// Package engine orchestrates one assessment: advisory physiological
// validation followed by the requested risk calculations.
//
// Validation and calculation are deliberately decoupled: findings are
// returned alongside the scores and never block them. Only structurally
// missing required inputs make a calculation fail, and that failure is
// reported per algorithm rather than aborting the whole assessment.
package engine

import (
	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/ranges"
	"github.com/mkoziy/cardiorisk/internal/risk"
	"github.com/mkoziy/cardiorisk/internal/validation"
)

// Engine evaluates assessments against a fixed range table. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	validator *validation.Validator
}

// New creates an engine over the given range table.
func New(table *ranges.Table) *Engine {
	return &Engine{validator: validation.New(table)}
}

// Report is the complete outcome of one assessment.
type Report struct {
	// Findings are advisory validation results keyed by check name.
	Findings map[string]validation.Result `json:"findings"`

	// Results holds one entry per algorithm that completed.
	Results map[models.RiskAlgorithm]*models.RiskResult `json:"results"`

	// Errors holds display-ready messages for algorithms that could
	// not run, keyed by algorithm.
	Errors map[models.RiskAlgorithm]string `json:"errors,omitempty"`
}

// Assess validates the input and runs the requested algorithms. With no
// algorithms given, both are run.
func (e *Engine) Assess(p *models.PatientInput, algorithms ...models.RiskAlgorithm) *Report {
	if len(algorithms) == 0 {
		algorithms = []models.RiskAlgorithm{models.AlgorithmFramingham, models.AlgorithmQRISK3}
	}

	report := &Report{
		Findings: e.findings(p),
		Results:  make(map[models.RiskAlgorithm]*models.RiskResult),
		Errors:   make(map[models.RiskAlgorithm]string),
	}

	for _, algorithm := range algorithms {
		var (
			result *models.RiskResult
			err    error
		)
		switch algorithm {
		case models.AlgorithmQRISK3:
			result, err = risk.QRISK3(p)
		default:
			result, err = risk.Framingham(p)
		}
		if err != nil {
			report.Errors[algorithm] = err.Error()
			continue
		}
		report.Results[algorithm] = result
	}

	return report
}

// findings runs every validation check the supplied fields allow.
// Checks whose inputs are absent are skipped, not failed.
func (e *Engine) findings(p *models.PatientInput) map[string]validation.Result {
	findings := make(map[string]validation.Result)
	opts := validation.Options{Gender: p.Sex}

	findings["age"] = e.validator.ValidateValue("age", float64(p.Age), opts)

	if p.DiastolicBP != nil {
		findings["blood_pressure"] = e.validator.ValidateBloodPressure(p.SystolicBP, *p.DiastolicBP)
	} else {
		findings["blood_pressure"] = e.validator.ValidateValue("sbp", p.SystolicBP, opts)
	}

	if total, hdl, err := p.CholesterolMmol(); err == nil {
		findings["total_cholesterol"] = e.validator.ValidateValue("total_cholesterol", total, opts)
		findings["hdl_cholesterol"] = e.validator.ValidateValue("hdl_cholesterol", hdl, opts)
		findings["cholesterol_ratio"] = e.validator.ValidateCholesterolRatio(total, hdl)
	}

	if p.HeightCm != nil && p.WeightKg != nil {
		findings["bmi"] = e.validator.ValidateBMI(*p.WeightKg, *p.HeightCm)
	} else if p.BMI != nil {
		findings["bmi"] = e.validator.ValidateValue("bmi", *p.BMI, opts)
	}

	if lpaMgDL, present, err := p.LpaMgDL(); err == nil && present {
		findings["lpa"] = e.validator.ValidateValue("lpa", lpaMgDL, opts)
	}

	return findings
}

// RangeTable builds the table an engine should run against: the
// built-in defaults, with the optional overrides file applied on top.
func RangeTable(overridesYAML []byte) (*ranges.Table, error) {
	table := ranges.Default()
	if len(overridesYAML) == 0 {
		return table, nil
	}
	overrides, err := ranges.Load(overridesYAML)
	if err != nil {
		return nil, err
	}
	return table.WithOverrides(overrides), nil
}
