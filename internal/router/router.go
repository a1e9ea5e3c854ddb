package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stitchbook-dev/stitchbook/internal/auth"
	"github.com/stitchbook-dev/stitchbook/internal/handlers"
	"github.com/stitchbook-dev/stitchbook/internal/middleware"
	"github.com/stitchbook-dev/stitchbook/internal/types"
)

type Options struct {
	Handler        *handlers.Handler
	Signer         *auth.Signer
	Users          middleware.UserLookup
	Log            zerolog.Logger
	AllowedOrigins []string
	TrustedProxies []string
	AuthLimiter    *middleware.RateLimiter
	MaxUploadBytes int64
}

// NewRouter builds the API engine. Client addresses used for rate limiting
// come from the TCP peer unless it is one of opts.TrustedProxies.
func NewRouter(opts Options) (*gin.Engine, error) {
	r := gin.New()

	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Log))

	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = types.DefaultOrigins
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := opts.Handler
	requireAuth := middleware.AuthMiddleware(opts.Signer, opts.Users)

	limiter := opts.AuthLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(0, 1)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/register", limiter.Middleware(), h.CreateUser)
		api.POST("/login", limiter.Middleware(), h.LoginUser)
		api.GET("/me", requireAuth, h.Me)

		// Pattern documents are viewable without a token.
		api.GET("/projects/:id/pdf", h.ViewPDF)

		threads := api.Group("/threads", requireAuth)
		{
			threads.GET("", h.ListThreads)
			threads.POST("", h.CreateThread)
			threads.GET("/export", h.ExportThreads)
			threads.POST("/import", h.ImportThreads)
			threads.PUT("/:id", h.UpdateThread)
			threads.DELETE("/:id", h.DeleteThread)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("", h.ListProjects)
			projects.POST("", h.CreateProject)
			projects.GET("/:id", h.GetProject)
			projects.PUT("/:id", h.UpdateProject)
			projects.DELETE("/:id", h.DeleteProject)

			projects.POST("/:id/pdf", h.UploadPDF)

			projects.POST("/:id/threads/:thread_id", h.AssignThread)
			projects.DELETE("/:id/threads/:thread_id", h.UnassignThread)
		}
	}

	return r, nil
}
