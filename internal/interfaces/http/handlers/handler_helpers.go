package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/middleware"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/response"
)

const msgInvalidBody = "Invalid request body"

// bindJSON decodes the body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(msgInvalidBody))
		return false
	}
	return true
}

// sessionUser returns the caller, writing a 401 when the route is not
// behind SessionAuth.
func sessionUser(c *gin.Context) (entities.SessionUser, bool) {
	user, ok := middleware.GetSessionUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
	}
	return user, ok
}
