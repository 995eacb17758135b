package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/medisync/user-service/internal/interface/http"
)

// UserModule registers the user directory CRUD, existence probes and search.
// Gateway-trusted, like RoleModule.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", m.Handler.Create)
		users.GET("", m.Handler.FindAll)
		users.GET("/active", m.Handler.FindActive)
		users.GET("/exists/username", m.Handler.ExistsByUsername)
		users.GET("/exists/email", m.Handler.ExistsByEmail)
		users.GET("/username/:username", m.Handler.FindByUsername)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.FindByID)
		users.PUT("/:id", m.Handler.Update)
		users.PUT("/:id/role", m.Handler.AssignRole)
		users.DELETE("/:id", m.Handler.Remove)
		users.DELETE("/:id/permanent", m.Handler.Delete)
	}
}
