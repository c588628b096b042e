package main

import (
	"github.com/complaintsys/backend/internal/config"
	"github.com/complaintsys/backend/internal/handlers"
	"github.com/complaintsys/backend/internal/models"
	"github.com/complaintsys/backend/internal/services"
	"github.com/complaintsys/backend/pkg/logger"
)

// appServices holds the long-lived clients and handlers shared read-only
// across all requests.
type appServices struct {
	complaintHandler *handlers.ComplaintHandler
	responseHandler  *handlers.ResponseHandler
	rolesHandler     *handlers.RolesHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes the database, external-service clients and handlers.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	blobStore, err := services.NewAzureBlobStore(&cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to create blob store client: %v", err)
	}

	completionService := services.NewCompletionService(&cfg.Completion)
	responseService := services.NewResponseService(models.GetDB(), blobStore)

	return &appServices{
		complaintHandler: handlers.NewComplaintHandler(completionService),
		responseHandler:  handlers.NewResponseHandler(responseService),
		rolesHandler:     handlers.NewRolesHandler(services.NewRoleService()),
		healthHandler:    handlers.NewHealthHandler(),
	}
}
