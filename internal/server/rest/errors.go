package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errMalformedBody marks a body that could not be decoded at all.
var errMalformedBody = errors.New("request body is not valid JSON")

// statusFor maps an error to its HTTP status, response code and a message
// safe to show to clients.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, common.ErrDuplicateName):
		return http.StatusBadRequest, "DUPLICATE_NAME", "user name already exists"
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, "AUTHENTICATION_FAILED", "incorrect user name or password"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "could not validate credentials"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "not allowed to modify another user's resources"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "NOT_FOUND", "not found"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, code, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err.Error())
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, errorBody{Code: code, Message: msg})
}
