package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

func (h *Handler) AssignThread(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projectID, threadID, err := utils.GetProjectThreadID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	assignment, err := h.store.Assign(ctx.Request.Context(), userID, projectID, threadID)

	if err != nil {
		h.respondError(ctx, err, "Project or thread not found", "Failed to assign thread")
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

func (h *Handler) UnassignThread(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projectID, threadID, err := utils.GetProjectThreadID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	deleted, err := h.store.Unassign(ctx.Request.Context(), userID, projectID, threadID)

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to unassign thread")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
