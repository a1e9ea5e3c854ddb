package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

func (h *Handler) ListThreads(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	threads, err := h.store.ListThreads(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to retrieve threads")
		return
	}

	ctx.JSON(http.StatusOK, threads)
}

func (h *Handler) CreateThread(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	var body types.ThreadInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Invalid request")
		return
	}

	thread, err := h.store.CreateThread(ctx.Request.Context(), userID, body)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to create thread")
		return
	}

	ctx.JSON(http.StatusCreated, thread)
}

func (h *Handler) UpdateThread(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	threadID, err := utils.GetThreadID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	var body types.ThreadInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, "Invalid request")
		return
	}

	thread, err := h.store.UpdateThread(ctx.Request.Context(), userID, threadID, body)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to update thread")
		return
	}

	ctx.JSON(http.StatusOK, thread)
}

func (h *Handler) DeleteThread(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	threadID, err := utils.GetThreadID(ctx)

	if err != nil {
		h.badRequest(ctx, err.Error())
		return
	}

	deleted, err := h.store.DeleteThread(ctx.Request.Context(), userID, threadID)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to delete thread")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *Handler) ExportThreads(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	threads, err := h.store.ListThreads(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to export threads")
		return
	}

	var buf bytes.Buffer

	if err := h.exporter.Write(&buf, threads); err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to export threads")
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=threads.csv")
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) ImportThreads(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.unauthorized(ctx)
		return
	}

	header, ok := h.formFile(ctx, "file")

	if !ok {
		return
	}

	file, err := header.Open()

	if err != nil {
		h.badRequest(ctx, "Invalid upload")
		return
	}
	defer file.Close()

	records, err := h.parser.Parse(file)

	if err != nil {
		h.badRequest(ctx, "Invalid import file")
		return
	}

	imported, err := h.store.ImportThreads(ctx.Request.Context(), userID, records)

	if err != nil {
		h.respondError(ctx, err, "Thread not found", "Failed to import threads")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"imported": imported})
}
