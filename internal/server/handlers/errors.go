package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/server/dto"
)

// respondError writes err as a dto.ErrorResponse with the mapped status.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)

	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		c.JSON(status, dto.ErrorResponse{
			Error:   string(errors.ErrCodeInternal),
			Message: "internal server error",
			Code:    status,
		})
		return
	}

	message := stdErr.Message
	if stdErr.Details != "" {
		message += ": " + stdErr.Details
	}
	c.JSON(status, dto.ErrorResponse{
		Error:   string(stdErr.Code),
		Message: message,
		Code:    status,
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid_request",
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}
