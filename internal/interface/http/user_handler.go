package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medisync/user-service/internal/application"
	"github.com/medisync/user-service/pkg/response"
	"github.com/medisync/user-service/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,pwd"`
	RoleID    string `json:"roleId" binding:"required"`
	Active    *bool  `json:"active"`
	PushToken string `json:"pushToken"`
}

type updateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,pwd"`
	Active    *bool   `json:"active"`
	PushToken *string `json:"pushToken"`
}

type assignRoleRequest struct {
	RoleID string `json:"roleId" binding:"required"`
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, err := h.Users.Create(c.Request.Context(), application.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
		Active:    req.Active,
		PushToken: req.PushToken,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user, "user created", nil)
}

// FindAll GET /users
func (h *UserHandler) FindAll(c *gin.Context) {
	users, err := h.Users.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users retrieved", nil)
}

// FindActive GET /users/active
func (h *UserHandler) FindActive(c *gin.Context) {
	users, err := h.Users.FindActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "active users retrieved", nil)
}

// ExistsByUsername GET /users/exists/username?username=
func (h *UserHandler) ExistsByUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"username": "is required"})
		return
	}
	exists, err := h.Users.ExistsByUsername(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, exists, "username existence checked", nil)
}

// ExistsByEmail GET /users/exists/email?email=
func (h *UserHandler) ExistsByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "is required"})
		return
	}
	exists, err := h.Users.ExistsByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, exists, "email existence checked", nil)
}

// FindByUsername GET /users/username/:username
func (h *UserHandler) FindByUsername(c *gin.Context) {
	user, err := h.Users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "user retrieved", nil)
}

// Search GET /users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	hits, err := h.Users.Search(c.Request.Context(), q, 10)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

// FindByID GET /users/:id
func (h *UserHandler) FindByID(c *gin.Context) {
	user, err := h.Users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "user retrieved", nil)
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, err := h.Users.Update(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Active:    req.Active,
		PushToken: req.PushToken,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "user updated", nil)
}

// AssignRole PUT /users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, err := h.Users.AssignRole(c.Request.Context(), c.Param("id"), req.RoleID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "role assigned", nil)
}

// Remove DELETE /users/:id (soft delete)
func (h *UserHandler) Remove(c *gin.Context) {
	user, err := h.Users.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "user deactivated", nil)
}

// Delete DELETE /users/:id/permanent (hard delete)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}
