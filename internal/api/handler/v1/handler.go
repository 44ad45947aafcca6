package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackathonweekly/community-api/internal/api/handler/v1/response"
	"github.com/hackathonweekly/community-api/internal/api/middleware"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getUserID returns the authenticated caller's ID set by the JWT
// middleware.
func getUserID(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized("not authenticated")
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, response.ErrUnauthorized("not authenticated")
	}

	return userID, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v: %w", name, err))
	}

	return uint(value), nil
}
