package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/store"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var body CredentialsRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Username & password required")
		return
	}

	user, err := h.store.CreateUser(ctx.Request.Context(), body.Username, body.Password)

	if errors.Is(err, store.ErrConflict) {
		ctx.JSON(http.StatusConflict, errorBody("Username already exists", types.CodeConflict))
		return
	}

	if err != nil {
		h.respondError(ctx, err, "User not found", "Failed to create user")
		return
	}

	h.issueToken(ctx, http.StatusCreated, user)
}

func (h *Handler) LoginUser(ctx *gin.Context) {
	var body CredentialsRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Username & password required")
		return
	}

	user, err := h.store.Authenticate(ctx.Request.Context(), body.Username, body.Password)

	if errors.Is(err, store.ErrInvalidCredentials) {
		ctx.JSON(http.StatusBadRequest, errorBody("Invalid credentials", types.CodeAuth))
		return
	}

	if err != nil {
		h.respondError(ctx, err, "User not found", "Failed to log in")
		return
	}

	h.issueToken(ctx, http.StatusOK, user)
}

func (h *Handler) issueToken(ctx *gin.Context, status int, user types.UserResponse) {
	token, err := h.signer.GenerateJWT(user.ID, user.Username)

	if err != nil {
		h.respondError(ctx, err, "User not found", "Failed to generate token")
		return
	}

	ctx.JSON(status, types.TokenResponse{Token: token})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
		},
	})
}
