package handlers

import (
	"github.com/complaintsys/backend/internal/services"
	"github.com/complaintsys/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type RolesHandler struct {
	roles *services.RoleService
}

func NewRolesHandler(roles *services.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

type getRolesRequest struct {
	Claims []services.Claim `json:"claims"`
}

// Resolve maps the submitted claims to internal roles. A missing or malformed
// body is treated as an empty claims list, never as an error.
func (h *RolesHandler) Resolve(c *gin.Context) {
	var req getRolesRequest
	_ = c.ShouldBindJSON(&req)

	response.OK(c, gin.H{"roles": h.roles.Resolve(req.Claims)})
}
