package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/farebd/leasehold/api/internal/errors"
	"github.com/farebd/leasehold/api/internal/middleware"
	"github.com/farebd/leasehold/api/internal/report"
	"github.com/farebd/leasehold/api/internal/scoring"
)

// CooperHandler handles the Cooper Index calculator HTTP requests. Scoring is
// a pure computation, so the handler talks to the scoring package directly.
type CooperHandler struct{}

// NewCooperHandler creates a new CooperHandler instance.
func NewCooperHandler() *CooperHandler {
	return &CooperHandler{}
}

// ScoreResponse represents a finalized Cooper Index score.
type ScoreResponse struct {
	Result *scoring.Result `json:"result"`
}

// OptionsResponse lists the calculator's criteria and their selectable
// options, in form order.
type OptionsResponse struct {
	Criteria []CriterionOptions `json:"criteria"`
}

// CriterionOptions is one criterion with its option table.
type CriterionOptions struct {
	Criterion scoring.Criterion `json:"criterion"`
	Options   []scoring.Option  `json:"options"`
}

// Score handles POST /api/v1/cooper/score.
// All six answers must carry known option codes; anything else is rejected as
// an incomplete form.
func (h *CooperHandler) Score(c *gin.Context) {
	var answers scoring.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	result, err := scoring.Score(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrIncompleteForm) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to compute score", err)
		return
	}

	c.JSON(http.StatusOK, ScoreResponse{Result: result})
}

// Report handles POST /api/v1/cooper/report.
// It scores the submitted answers and streams the result back as a PDF.
func (h *CooperHandler) Report(c *gin.Context) {
	var answers scoring.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	result, err := scoring.Score(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrIncompleteForm) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to compute score", err)
		return
	}

	generatedAt := time.Now().UTC()
	filename := fmt.Sprintf("cooper-index-%s.pdf", generatedAt.Format("2006-01-02"))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := report.WriteScorePDF(c.Writer, result, generatedAt); err != nil {
		// Headers are already out; all we can do is log and drop the stream.
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Failed to render score report", err, nil)
		}
	}
}

// Options handles GET /api/v1/cooper/options.
// The frontend builds its select inputs from this, so codes and labels match
// what Score expects.
func (h *CooperHandler) Options(c *gin.Context) {
	criteria := make([]CriterionOptions, 0, len(scoring.Criteria))
	for _, criterion := range scoring.Criteria {
		criteria = append(criteria, CriterionOptions{
			Criterion: criterion,
			Options:   scoring.Options(criterion),
		})
	}

	c.JSON(http.StatusOK, OptionsResponse{Criteria: criteria})
}
