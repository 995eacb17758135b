package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medisync/user-service/internal/application"
	"github.com/medisync/user-service/pkg/response"
	"github.com/medisync/user-service/pkg/validation"
)

type RoleHandler struct {
	Roles  *application.RoleService
	Logger *logrus.Logger
}

func NewRoleHandler(roles *application.RoleService, logger *logrus.Logger) *RoleHandler {
	return &RoleHandler{Roles: roles, Logger: logger}
}

type createRoleRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

type updateRoleRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Active *bool   `json:"active"`
}

// Create POST /roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, err := h.Roles.Create(c.Request.Context(), application.CreateRoleInput{Name: req.Name, Active: req.Active})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, role, "role created", nil)
}

// FindAll GET /roles
func (h *RoleHandler) FindAll(c *gin.Context) {
	roles, err := h.Roles.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles, "roles retrieved", nil)
}

// FindActive GET /roles/active
func (h *RoleHandler) FindActive(c *gin.Context) {
	roles, err := h.Roles.FindActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles, "active roles retrieved", nil)
}

// FindByID GET /roles/:id
func (h *RoleHandler) FindByID(c *gin.Context) {
	role, err := h.Roles.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, role, "role retrieved", nil)
}

// FindByName GET /roles/name/:name
func (h *RoleHandler) FindByName(c *gin.Context) {
	role, err := h.Roles.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, role, "role retrieved", nil)
}

// Update PUT /roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, err := h.Roles.Update(c.Request.Context(), c.Param("id"), application.UpdateRoleInput{Name: req.Name, Active: req.Active})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, role, "role updated", nil)
}

// Remove DELETE /roles/:id (soft delete)
func (h *RoleHandler) Remove(c *gin.Context) {
	role, err := h.Roles.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, role, "role deactivated", nil)
}

// Delete DELETE /roles/:id/permanent (hard delete)
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.Roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "role deleted", nil)
}
