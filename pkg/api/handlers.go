package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sfd-intake/pkg/middleware"
	"sfd-intake/pkg/models"
	"sfd-intake/pkg/services"
)

// Version is reported by the status endpoint
var Version = "dev"

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	intakeService services.IntakeService
	logger        *zap.Logger
	startTime     time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(intakeService services.IntakeService, logger *zap.Logger) *Handlers {
	return &Handlers{
		intakeService: intakeService,
		logger:        logger,
		startTime:     time.Now(),
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Status reports uptime and build version
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"startTime": h.startTime,
		"uptime":    uint64(time.Since(h.startTime).Seconds()),
		"ver":       Version,
	})
}

var formNames = map[models.FormVariant]string{
	models.Lead:             "Lead registration",
	models.ScholarshipGrant: "Grant/Scholarship",
	models.Volunteer:        "Volunteer registration",
}

// FormStatus returns a side-effect free health handler for one form
func (h *Handlers) FormStatus(variant models.FormVariant) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.FormStatus{
			Status:     "ok",
			Message:    formNames[variant] + " API is functional",
			Configured: h.intakeService.Configured(variant),
		})
	}
}

// MaxBodyBytes caps a submission body. The largest form is well under 2KB.
const MaxBodyBytes = 16 << 10

// Submit returns the POST handler for one form
func (h *Handlers) Submit(variant models.FormVariant) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

		var sub models.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.logger.Info("Rejected oversized body",
					zap.String("variant", variant.String()),
					zap.String("request_id", middleware.GetRequestID(c)),
					zap.Int64("limit", tooLarge.Limit),
				)
				c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request body too large"})
				return
			}
			h.logger.Info("Error parsing JSON",
				zap.String("variant", variant.String()),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON format"})
			return
		}

		receipt, err := h.intakeService.Submit(c.Request.Context(), variant, sub)
		if err != nil {
			writeError(c, err)
			return
		}
		writeReceipt(c, receipt)
	}
}
