package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/medisync/user-service/internal/interface/http"
)

// RoleModule registers the role directory CRUD. These routes are
// gateway-trusted: authorization happens upstream via /auth/validate.
type RoleModule struct {
	Handler *handlers.RoleHandler
}

func NewRoleModule(h *handlers.RoleHandler) *RoleModule {
	return &RoleModule{Handler: h}
}

func (m *RoleModule) Register(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	{
		roles.POST("", m.Handler.Create)
		roles.GET("", m.Handler.FindAll)
		roles.GET("/active", m.Handler.FindActive)
		roles.GET("/name/:name", m.Handler.FindByName)
		roles.GET("/:id", m.Handler.FindByID)
		roles.PUT("/:id", m.Handler.Update)
		roles.DELETE("/:id", m.Handler.Remove)
		roles.DELETE("/:id/permanent", m.Handler.Delete)
	}
}
