package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// PatientSnapshot stores the input of an assessment as a JSON column.
type PatientSnapshot struct {
	PatientInput
}

func (s PatientSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s.PatientInput)
}

func (s *PatientSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PatientSnapshot")
	}
	return json.Unmarshal(bytes, &s.PatientInput)
}

// ResultSnapshot stores a RiskResult as a JSON column.
type ResultSnapshot struct {
	RiskResult
}

func (s ResultSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s.RiskResult)
}

func (s *ResultSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ResultSnapshot")
	}
	return json.Unmarshal(bytes, &s.RiskResult)
}

// Assessment records one completed risk calculation for later review.
// Persistence is a collaborator of the engine, never a dependency: the
// calculators themselves do not know this type exists.
type Assessment struct {
	bun.BaseModel `bun:"table:assessments,alias:a"`

	ID         int64           `bun:"id,pk,autoincrement" json:"id"`
	PatientRef string          `bun:"patient_ref,notnull" json:"patient_ref"`
	Algorithm  RiskAlgorithm   `bun:"algorithm,notnull" json:"algorithm"`
	Input      PatientSnapshot `bun:"input,type:json,notnull" json:"input"`
	Result     ResultSnapshot  `bun:"result,type:json,notnull" json:"result"`

	// Denormalized from Result for indexed queries.
	ModifiedRisk float64      `bun:"modified_risk,notnull" json:"modified_risk"`
	Category     RiskCategory `bun:"category,notnull" json:"category"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// BeforeUpdate updates the timestamp on modifications.
func (a *Assessment) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required assessment fields are present.
func (a *Assessment) Validate() error {
	if a.PatientRef == "" {
		return errors.New("patient reference is required")
	}
	if a.Algorithm != AlgorithmFramingham && a.Algorithm != AlgorithmQRISK3 {
		return errors.New("algorithm must be framingham or qrisk3")
	}
	if a.Category == "" {
		return errors.New("risk category is required")
	}
	return nil
}

// IsHighRisk reports whether the assessment falls in the high category.
func (a *Assessment) IsHighRisk() bool {
	return a.Category == RiskHigh
}
