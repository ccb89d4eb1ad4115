package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// respondError maps the error taxonomy onto HTTP statuses. Auth-shaped
// failures additionally carry needs_auth so the frontend can surface a
// reconnect action instead of a generic error toast.
func respondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	body := dto.FailureResponse{
		Success:        false,
		Error:          err.Error(),
		Classification: kind.String(),
	}

	status := http.StatusBadGateway
	switch kind {
	case apperror.KindInvalid:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindConflict:
		status = http.StatusConflict
	case apperror.KindAuthRequired, apperror.KindReauthRequired, apperror.KindNoCredential:
		status = http.StatusUnauthorized
		body.NeedsAuth = true
		body.ReconnectHint = "/auth/youtube"
	case apperror.KindTransient:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.GetLogger().Error(err)
	}
	ctx.JSON(status, body)
}

func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.FailureResponse{
		Success: false,
		Error:   message,
	})
}
