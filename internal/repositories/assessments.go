package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/mkoziy/cardiorisk/internal/models"
)

// InsertAssessment validates and stores a completed assessment.
func InsertAssessment(ctx context.Context, db *bun.DB, a *models.Assessment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := db.NewInsert().Model(a).Exec(ctx)
	return err
}

// GetLatestAssessment fetches the most recent assessment for a patient,
// optionally restricted to one algorithm.
func GetLatestAssessment(ctx context.Context, db *bun.DB, patientRef string, algorithm models.RiskAlgorithm) (*models.Assessment, error) {
	a := new(models.Assessment)
	q := db.NewSelect().
		Model(a).
		Where("patient_ref = ?", patientRef)
	if algorithm != "" {
		q = q.Where("algorithm = ?", algorithm)
	}
	err := q.OrderExpr("created_at DESC").
		Limit(1).
		Scan(ctx)

	return a, err
}

// ListAssessments returns a patient's assessment history, newest first.
func ListAssessments(ctx context.Context, db *bun.DB, patientRef string, limit int) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	err := db.NewSelect().
		Model(&assessments).
		Where("patient_ref = ?", patientRef).
		OrderExpr("created_at DESC").
		Limit(limit).
		Scan(ctx)

	return assessments, err
}

// ListHighRiskAssessments returns the most recent high-category
// assessments across all patients, for follow-up review.
func ListHighRiskAssessments(ctx context.Context, db *bun.DB, limit int) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	err := db.NewSelect().
		Model(&assessments).
		Where("category = ?", models.RiskHigh).
		OrderExpr("modified_risk DESC").
		Limit(limit).
		Scan(ctx)

	return assessments, err
}
