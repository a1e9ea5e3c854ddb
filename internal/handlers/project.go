package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r ProjectRequest) input() types.ProjectInput {
	return types.ProjectInput{Name: r.Name, Description: r.Description}
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var body ProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Invalid request")
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	project, err := h.store.CreateProject(ctx.Request.Context(), userID, body.input())

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to create project")
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projects, err := h.store.ListProjects(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to retrieve projects")
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	project, err := h.store.GetProject(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to retrieve project")
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	var body ProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Invalid request")
		return
	}

	project, err := h.store.UpdateProject(ctx.Request.Context(), userID, projectID, body.input())

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to update project")
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	deleted, err := h.store.DeleteProject(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to delete project")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
