package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/middleware"
	"github.com/stitchbook-dev/stitchbook/internal/types"
)

var ErrNotAuthenticated = errors.New("User not authenticated")

// GetCurrentUser returns the identity the auth middleware stored on the
// request.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)
	if !ok || user.ID == 0 {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// GetRequestID returns the id assigned by the request logger, if any.
func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
