package main

import (
	"github.com/complaintsys/backend/internal/middleware"
	"github.com/complaintsys/backend/pkg/logger"
	"github.com/complaintsys/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS())

	// Wrong verb on a known route answers 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(response.MethodNotAllowed)

	// Rate limiter for the anonymous public surface
	limiter := middleware.NewRateLimiter(10, 20)
	public := r.Group("", limiter.Middleware())
	{
		public.POST("/processComplaint", svc.complaintHandler.Process)
		public.POST("/saveResponse", svc.responseHandler.Save)
		public.GET("/GetRoles", svc.rolesHandler.Resolve)
		public.POST("/GetRoles", svc.rolesHandler.Resolve)
		public.GET("/GetSavedResponses", svc.responseHandler.List)
	}

	r.GET("/health", svc.healthHandler.Check)
}
