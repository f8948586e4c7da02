package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sfd-intake/pkg/models"
	"sfd-intake/pkg/services"
)

// MsgProcessingFailed is used when an error escapes the pipeline's taxonomy
const MsgProcessingFailed = "Failed to process registration"

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeReceipt(c *gin.Context, receipt *services.Receipt) {
	data := make(map[string]string, len(receipt.Fields)+1)
	for k, v := range receipt.Fields {
		data[k] = v
	}
	data[models.ColTimestamp] = receipt.Timestamp

	c.JSON(http.StatusCreated, models.SubmissionResponse{
		Success: true,
		Message: receipt.Message,
		Data:    data,
	})
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ie *services.IntakeError
	if !errors.As(err, &ie) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:  MsgProcessingFailed,
			Detail: err.Error(),
		})
		return
	}

	c.JSON(StatusFor(ie.Kind), models.ErrorResponse{
		Error:    ie.Message,
		Detail:   ie.Detail(),
		Missing:  ie.Missing,
		Settings: ie.Settings,
	})
}
