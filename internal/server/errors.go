package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ai-gateway/conversation-relay/internal/conversation"
	"github.com/ai-gateway/conversation-relay/internal/provider"
)

const (
	codeValidation          = "VALIDATION_ERROR"
	codeProviderError       = "PROVIDER_ERROR"
	codeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	codeMalformedResponse   = "MALFORMED_PROVIDER_RESPONSE"
	codeTimeout             = "TIMEOUT"
	codeInternal            = "INTERNAL_ERROR"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Success: false, Error: message, Code: code})
}

// handleRelayError maps relay failures to status codes. Provider details are
// logged, not returned.
func (s *Server) handleRelayError(c *gin.Context, err error) {
	var ve *conversation.ValidationError
	if errors.As(err, &ve) {
		writeError(c, http.StatusBadRequest, codeValidation, ve.Error())
		return
	}

	s.logger.Error("conversation failed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err))

	var pe *provider.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, codeTimeout, "inference provider timed out")
	case errors.Is(err, provider.ErrMalformedResponse):
		writeError(c, http.StatusBadGateway, codeMalformedResponse, "inference provider returned an unexpected response")
	case errors.As(err, &pe) && pe.Unavailable:
		writeError(c, http.StatusServiceUnavailable, codeProviderUnavailable, "inference provider is unavailable")
	case errors.As(err, &pe):
		writeError(c, http.StatusBadGateway, codeProviderError, "inference provider request failed")
	default:
		writeError(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
