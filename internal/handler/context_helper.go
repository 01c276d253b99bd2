package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-desk-api/internal/middleware"
	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
	"github.com/noah-isme/hostel-desk-api/pkg/response"
)

// sessionFromContext resolves the caller's session, replying 401 when the
// JWT middleware did not run or stored nothing.
func sessionFromContext(c *gin.Context) (models.Session, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Session{}, false
	}
	return claims.Session(), true
}
