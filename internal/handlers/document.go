package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

func (h *Handler) UploadPDF(ctx *gin.Context) {
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

	header, ok := h.formFile(ctx, "pdf")

	if !ok {
		return
	}

	file, err := header.Open()

	if err != nil {
		h.badRequest(ctx, "Invalid upload")
		return
	}
	defer file.Close()

	filename, err := h.attacher.Attach(ctx.Request.Context(), userID, projectID, header.Filename, file)

	if err != nil {
		h.respondError(ctx, err, "Project not found", "Failed to save PDF file")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "filename": filename})
}

// ViewPDF serves a project's pattern document inline. It is public.
func (h *Handler) ViewPDF(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	name, obj, err := h.attacher.Open(ctx.Request.Context(), projectID)

	if err != nil {
		h.respondError(ctx, err, "No PDF found", "Failed to load PDF")
		return
	}
	defer obj.Close()

	ctx.DataFromReader(http.StatusOK, obj.Size(), "application/pdf", obj, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s"`, name),
	})
}
