package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errorMapping = []struct {
	err     error
	code    int
	message string
}{
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{common.ErrorNotFound, http.StatusNotFound, "Not found"},
	{common.ErrMissingName, http.StatusBadRequest, "Missing name"},
	{common.ErrMissingType, http.StatusBadRequest, "Missing type"},
	{common.ErrMissingData, http.StatusBadRequest, "Missing data"},
	{common.ErrParentNotFound, http.StatusBadRequest, "Parent not found"},
	{common.ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
	{common.ErrInvalidData, http.StatusBadRequest, "Invalid data"},
	{common.ErrMissingEmail, http.StatusBadRequest, "Missing email"},
	{common.ErrMissingPassword, http.StatusBadRequest, "Missing password"},
	{common.ErrAlreadyExists, http.StatusBadRequest, "Already exist"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.code, m.message
		}
	}
	return http.StatusInternalServerError, "Internal error"
}

func abortWithError(c *gin.Context, logger logging.Logger, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), err.Error(), "path", c.Request.URL.Path)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, errorResponse{Error: msg})
}
