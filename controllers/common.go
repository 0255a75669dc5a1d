package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bluecotton/somboard/middleware"
	"github.com/bluecotton/somboard/services"
	"github.com/bluecotton/somboard/utils"
)

// getMemberID extracts the acting member id placed by the auth middleware.
func getMemberID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextMemberIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// serviceError maps the service failure taxonomy onto HTTP statuses. Not-found
// and validation failures are data for the client; everything else is opaque.
func serviceError(ctx *gin.Context, code int, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, code, "not found")
	case errors.Is(err, services.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, code, "conflicting concurrent update")
	default:
		utils.Sugar.Errorf("%s: %v", fallback, err)
		utils.Error(ctx, http.StatusInternalServerError, code, fallback)
	}
}
