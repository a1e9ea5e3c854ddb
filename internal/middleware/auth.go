package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/auth"
	"github.com/stitchbook-dev/stitchbook/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// UserLookup confirms that a token's subject still exists.
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (types.UserResponse, error)
}

func abortAuth(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "code": types.CodeAuth})
}

func AuthMiddleware(signer *auth.Signer, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortAuth(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortAuth(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := signer.VerifyJWT(strings.TrimSpace(parts[1]))

		if err != nil {
			abortAuth(ctx, "Invalid or expired token")
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), claims.UserID)

		if err != nil {
			abortAuth(ctx, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
		})
		ctx.Next()
	}
}
