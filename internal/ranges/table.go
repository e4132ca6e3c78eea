// Package ranges holds the physiological range table consulted by the
// validator and the risk calculators. The table is read-only after
// construction and safe for concurrent readers.
package ranges

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed ranges.yaml
var defaultRangesYAML []byte

// GenderThresholds carries thresholds that differ between male and
// female reference ranges (waist circumference, creatinine).
type GenderThresholds struct {
	HighRiskMin *float64 `yaml:"high_risk_min,omitempty" json:"high_risk_min,omitempty"`
	NormalMin   *float64 `yaml:"normal_min,omitempty" json:"normal_min,omitempty"`
	NormalMax   *float64 `yaml:"normal_max,omitempty" json:"normal_max,omitempty"`
}

// RangeDefinition describes one measurement type.
//
// Min/Max are absolute physiological bounds: values outside them are
// impossible, not merely alarming. CriticalMin/CriticalMax bound the
// medically plausible band inside them. The remaining thresholds are
// advisory only.
type RangeDefinition struct {
	Description string `yaml:"description" json:"description"`
	Unit        string `yaml:"unit" json:"unit"`

	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max"`
	CriticalMin float64 `yaml:"critical_min" json:"critical_min"`
	CriticalMax float64 `yaml:"critical_max" json:"critical_max"`

	LowThreshold  *float64 `yaml:"low_threshold,omitempty" json:"low_threshold,omitempty"`
	HighThreshold *float64 `yaml:"high_threshold,omitempty" json:"high_threshold,omitempty"`
	TargetMin     *float64 `yaml:"target_min,omitempty" json:"target_min,omitempty"`
	TargetMax     *float64 `yaml:"target_max,omitempty" json:"target_max,omitempty"`
	HighRiskMin   *float64 `yaml:"high_risk_min,omitempty" json:"high_risk_min,omitempty"`

	PreDiabetesMin    *float64 `yaml:"pre_diabetes_min,omitempty" json:"pre_diabetes_min,omitempty"`
	DiabetesThreshold *float64 `yaml:"diabetes_threshold,omitempty" json:"diabetes_threshold,omitempty"`

	Male   *GenderThresholds `yaml:"male,omitempty" json:"male,omitempty"`
	Female *GenderThresholds `yaml:"female,omitempty" json:"female,omitempty"`
}

// Validate checks the table-construction invariant
// min <= critical_min <= critical_max <= max.
func (d *RangeDefinition) Validate() error {
	if d.Min > d.CriticalMin {
		return fmt.Errorf("min %g exceeds critical_min %g", d.Min, d.CriticalMin)
	}
	if d.CriticalMin > d.CriticalMax {
		return fmt.Errorf("critical_min %g exceeds critical_max %g", d.CriticalMin, d.CriticalMax)
	}
	if d.CriticalMax > d.Max {
		return fmt.Errorf("critical_max %g exceeds max %g", d.CriticalMax, d.Max)
	}
	return nil
}

// Table is an immutable registry of range definitions keyed by
// measurement type.
type Table struct {
	defs map[string]RangeDefinition
}

type tableFile struct {
	Ranges map[string]RangeDefinition `yaml:"ranges"`
}

// NewTable builds a table, rejecting any definition that violates the
// range invariant. A violation is a configuration error, not a runtime
// condition.
func NewTable(defs map[string]RangeDefinition) (*Table, error) {
	copied := make(map[string]RangeDefinition, len(defs))
	for typ, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("range %q: %w", typ, err)
		}
		copied[typ] = def
	}
	return &Table{defs: copied}, nil
}

// Load parses YAML bytes into a validated table.
func Load(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Ranges) == 0 {
		return nil, fmt.Errorf("no ranges defined")
	}
	return NewTable(file.Ranges)
}

// Default returns the built-in table. The embedded defaults are part of
// the binary, so a parse or invariant failure here is a build defect.
func Default() *Table {
	t, err := Load(defaultRangesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded range table invalid: %v", err))
	}
	return t
}

// WithOverrides returns a new table with definitions from o replacing
// same-keyed definitions in t. Neither input is modified.
func (t *Table) WithOverrides(o *Table) *Table {
	merged := make(map[string]RangeDefinition, len(t.defs)+len(o.defs))
	for typ, def := range t.defs {
		merged[typ] = def
	}
	for typ, def := range o.defs {
		merged[typ] = def
	}
	return &Table{defs: merged}
}

// Get returns the definition for a measurement type.
func (t *Table) Get(typ string) (*RangeDefinition, bool) {
	def, ok := t.defs[typ]
	if !ok {
		return nil, false
	}
	return &def, true
}

// Types returns the registered measurement types in sorted order.
func (t *Table) Types() []string {
	types := make([]string, 0, len(t.defs))
	for typ := range t.defs {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
