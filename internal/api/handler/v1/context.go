package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/middleware"
)

// getUserIDFromContext reads the user ID the JWT middleware stored.
func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized("user is not logged in")
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrUnauthorized("user ID is invalid")
	}

	return userID, nil
}
