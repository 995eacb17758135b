package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on a RouterGroup.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry groups feature modules under a common API prefix. Modules receive
// their collaborators at construction; there is no ambient lookup.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
