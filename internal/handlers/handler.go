package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stitchbook-dev/stitchbook/internal/auth"
	"github.com/stitchbook-dev/stitchbook/internal/csvio"
	"github.com/stitchbook-dev/stitchbook/internal/documents"
	"github.com/stitchbook-dev/stitchbook/internal/store"
	"github.com/stitchbook-dev/stitchbook/internal/types"
	"github.com/stitchbook-dev/stitchbook/internal/utils"
)

// Handler serves the REST API. Everything it touches is injected.
type Handler struct {
	store          *store.Store
	signer         *auth.Signer
	attacher       *documents.Attacher
	parser         csvio.Parser
	exporter       *csvio.Exporter
	log            zerolog.Logger
	maxUploadBytes int64
}

type Dependencies struct {
	Store          *store.Store
	Signer         *auth.Signer
	Attacher       *documents.Attacher
	Parser         csvio.Parser
	Exporter       *csvio.Exporter
	Log            zerolog.Logger
	MaxUploadBytes int64
}

func New(deps Dependencies) *Handler {
	parser := deps.Parser
	if parser == nil {
		parser = csvio.LineParser{}
	}

	exporter := deps.Exporter
	if exporter == nil {
		exporter = csvio.NewExporter(csvio.DefaultBoolFormat)
	}

	return &Handler{
		store:          deps.Store,
		signer:         deps.Signer,
		attacher:       deps.Attacher,
		parser:         parser,
		exporter:       exporter,
		log:            deps.Log,
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

func errorBody(message, code string) gin.H {
	return gin.H{"error": message, "code": code}
}

// respondError maps store and document errors onto HTTP statuses. Anything
// unrecognised is logged and reported as an opaque storage failure.
func (h *Handler) respondError(ctx *gin.Context, err error, notFound, failure string) {
	var validation *store.ValidationError

	switch {
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, errorBody(validation.Error(), types.CodeValidation))
	case errors.Is(err, store.ErrNotFound), errors.Is(err, documents.ErrNotFound):
		ctx.JSON(http.StatusNotFound, errorBody(notFound, types.CodeNotFound))
	case errors.Is(err, store.ErrConflict):
		ctx.JSON(http.StatusConflict, errorBody(err.Error(), types.CodeConflict))
	default:
		h.log.Error().
			Err(err).
			Str("request_id", utils.GetRequestID(ctx)).
			Msg(failure)
		ctx.JSON(http.StatusInternalServerError, errorBody(failure, types.CodeStorage))
	}
}

func (h *Handler) unauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, errorBody("User not authenticated", types.CodeAuth))
}

func (h *Handler) badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, errorBody(message, types.CodeValidation))
}

// formFile reads one multipart file field, writing the error response itself
// when the field is absent or the body is unreadable.
func (h *Handler) formFile(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	if h.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUploadBytes)
	}

	file, err := ctx.FormFile(field)
	if err == nil {
		return file, true
	}

	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		ctx.JSON(http.StatusRequestEntityTooLarge, errorBody("File too large", types.CodeValidation))
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		h.badRequest(ctx, "No file uploaded")
	default:
		h.badRequest(ctx, "Invalid upload")
	}

	return nil, false
}
