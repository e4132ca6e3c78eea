// Command riskserver exposes the assessment engine over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/mkoziy/cardiorisk/internal/config"
	"github.com/mkoziy/cardiorisk/internal/database"
	"github.com/mkoziy/cardiorisk/internal/engine"
	"github.com/mkoziy/cardiorisk/internal/logging"
	"github.com/mkoziy/cardiorisk/internal/migrations"
	"github.com/mkoziy/cardiorisk/internal/models"
	"github.com/mkoziy/cardiorisk/internal/ranges"
	"github.com/mkoziy/cardiorisk/internal/ratelimit"
	"github.com/mkoziy/cardiorisk/internal/repositories"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	var overrides []byte
	if cfg.Ranges.OverridesFile != "" {
		data, err := os.ReadFile(cfg.Ranges.OverridesFile)
		if err != nil {
			return fmt.Errorf("read range overrides: %w", err)
		}
		overrides = data
	}
	table, err := engine.RangeTable(overrides)
	if err != nil {
		return fmt.Errorf("load range table: %w", err)
	}

	var db *bun.DB
	if cfg.Database.DSN != "" {
		db, err = database.Open(cfg.Database.DSN, cfg.Database.Debug)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := migrations.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	s := &server{
		engine: engine.New(table),
		table:  table,
		db:     db,
		logger: logger,
	}

	limiter := ratelimit.New(cfg.Server.RequestsPerSecond, cfg.Server.Burst)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), rateLimit(limiter))

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api/v1")
	{
		api.POST("/assess", s.handleAssess)
		api.GET("/ranges", s.handleRanges)
		api.GET("/patients/:ref/assessments", s.handleHistory)
		api.GET("/assessments/high-risk", s.handleHighRisk)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

type server struct {
	engine *engine.Engine
	table  *ranges.Table
	db     *bun.DB
	logger *zap.Logger
}

// assessRequest wraps the patient input with an optional reference used
// for persistence. Without a reference the assessment is not stored.
type assessRequest struct {
	PatientRef string              `json:"patient_ref"`
	Patient    models.PatientInput `json:"patient"`
}

func (s *server) handleAssess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Patient.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	report := s.engine.Assess(&req.Patient)

	if req.PatientRef != "" && s.db != nil {
		s.persist(c.Request.Context(), req.PatientRef, &req.Patient, report)
	}

	c.JSON(http.StatusOK, report)
}

// persist stores completed results. Storage failures are logged, not
// surfaced: the caller already has the scores.
func (s *server) persist(ctx context.Context, patientRef string, patient *models.PatientInput, report *engine.Report) {
	for algorithm, result := range report.Results {
		a := &models.Assessment{
			PatientRef:   patientRef,
			Algorithm:    algorithm,
			Input:        models.PatientSnapshot{PatientInput: *patient},
			Result:       models.ResultSnapshot{RiskResult: *result},
			ModifiedRisk: result.ModifiedRisk,
			Category:     result.Category,
		}
		if err := repositories.InsertAssessment(ctx, s.db, a); err != nil {
			s.logger.Error("store assessment",
				zap.String("patient_ref", patientRef),
				zap.String("algorithm", string(algorithm)),
				zap.Error(err))
		}
	}
}

func (s *server) handleRanges(c *gin.Context) {
	defs := make(map[string]*ranges.RangeDefinition)
	for _, typ := range s.table.Types() {
		def, _ := s.table.Get(typ)
		defs[typ] = def
	}
	c.JSON(http.StatusOK, gin.H{"ranges": defs})
}

func (s *server) handleHistory(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "assessment history is disabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit <= 0 || limit > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
	}

	assessments, err := repositories.ListAssessments(c.Request.Context(), s.db, c.Param("ref"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

func (s *server) handleHighRisk(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "assessment history is disabled"})
		return
	}

	assessments, err := repositories.ListHighRiskAssessments(c.Request.Context(), s.db, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func rateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
