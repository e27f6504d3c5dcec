package controller

import (
	"errors"
	"net/http"

	"maintbot/internal/checker"
	"maintbot/internal/index"
	"maintbot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionController handles submission evaluation HTTP endpoints
type SubmissionController struct {
	evaluation *service.EvaluationService
	logger     *zap.Logger
}

// NewSubmissionController creates a new submission controller
func NewSubmissionController(evaluation *service.EvaluationService, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{
		evaluation: evaluation,
		logger:     logger,
	}
}

// EvaluateRequest is the request body for submission evaluation
type EvaluateRequest struct {
	SubmissionID string `json:"submission_id"`
	Language     string `json:"language" binding:"required"`
	Source       string `json:"source" binding:"required"`

	// Checkers, when present, override the registered collection for
	// this one evaluation (authoring-format records, one per entry)
	Checkers []checker.CheckerConfig `json:"checkers"`
}

// Evaluate handles POST /api/v1/evaluate
func (sc *SubmissionController) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.evaluation.Evaluate(c.Request.Context(), req.SubmissionID, req.Language, []byte(req.Source), req.Checkers)
	if err != nil {
		var parseErr *index.ParseError
		var configErr *checker.InvalidConfigError
		switch {
		case errors.As(err, &parseErr):
			// The submission itself could not be modeled; no report
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.As(err, &configErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			sc.logger.Error("Evaluation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCheckers handles GET /api/v1/checkers
func (sc *SubmissionController) ListCheckers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"checkers":  sc.evaluation.Checkers(),
		"languages": sc.evaluation.Languages(),
	})
}
