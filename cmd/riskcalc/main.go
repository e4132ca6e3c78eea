// Command riskcalc scores a single patient from a YAML file and prints
// the assessment report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mkoziy/cardiorisk/internal/config"
	"github.com/mkoziy/cardiorisk/internal/database"
	"github.com/mkoziy/cardiorisk/internal/engine"
	"github.com/mkoziy/cardiorisk/internal/logging"
	"github.com/mkoziy/cardiorisk/internal/migrations"
	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/ranges"
	"github.com/mkoziy/cardiorisk/internal/repositories"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		inputPath  = flag.String("input", "", "path to patient YAML file")
		patientRef = flag.String("store", "", "patient reference; when set the assessment is saved to the history database")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: riskcalc -input patient.yaml [-config config.yaml] [-store patient-ref]")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *inputPath, *patientRef); err != nil {
		logger.Error("assessment failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, inputPath, patientRef string) error {
	table, err := loadRangeTable(cfg)
	if err != nil {
		return fmt.Errorf("load range table: %w", err)
	}

	patient, err := loadPatient(inputPath)
	if err != nil {
		return fmt.Errorf("load patient: %w", err)
	}

	report := engine.New(table).Assess(patient)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if patientRef == "" {
		return nil
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("-store given but database.dsn is empty")
	}
	return store(cfg, logger, patientRef, patient, report)
}

func loadRangeTable(cfg *config.Config) (*ranges.Table, error) {
	var overrides []byte
	if cfg.Ranges.OverridesFile != "" {
		data, err := os.ReadFile(cfg.Ranges.OverridesFile)
		if err != nil {
			return nil, err
		}
		overrides = data
	}
	return engine.RangeTable(overrides)
}

func loadPatient(path string) (*models.PatientInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patient models.PatientInput
	if err := yaml.Unmarshal(data, &patient); err != nil {
		return nil, err
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}
	return &patient, nil
}

// store saves one assessment row per completed algorithm.
func store(cfg *config.Config, logger *zap.Logger, patientRef string, patient *models.PatientInput, report *engine.Report) error {
	ctx := context.Background()

	db, err := database.Open(cfg.Database.DSN, cfg.Database.Debug)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := migrations.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for algorithm, result := range report.Results {
		a := &models.Assessment{
			PatientRef:   patientRef,
			Algorithm:    algorithm,
			Input:        models.PatientSnapshot{PatientInput: *patient},
			Result:       models.ResultSnapshot{RiskResult: *result},
			ModifiedRisk: result.ModifiedRisk,
			Category:     result.Category,
		}
		if err := repositories.InsertAssessment(ctx, db, a); err != nil {
			return fmt.Errorf("store %s assessment: %w", algorithm, err)
		}
		logger.Info("assessment stored",
			zap.String("patient_ref", patientRef),
			zap.String("algorithm", string(algorithm)),
			zap.Float64("modified_risk", result.ModifiedRisk),
			zap.String("category", string(result.Category)))
	}

	return nil
}
