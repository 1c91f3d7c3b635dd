package collection

import (
	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/middleware"
)

// Module owns every collection resource and its admin route family. Reads
// are open; mutations require an admin token.
type Module struct {
	resources []Resource
	verifier  middleware.TokenVerifier
}

func NewModule(resources []Resource, verifier middleware.TokenVerifier) *Module {
	return &Module{resources: resources, verifier: verifier}
}

// Resources returns the catalog for consumers such as the public facade.
func (m *Module) Resources() []Resource {
	return m.resources
}

func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	admin := middleware.RequireAdmin(m.verifier)
	for _, res := range m.resources {
		h := NewHandler(res)
		g := api.Group("/" + res.Definition().Name)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", admin, h.Create)
		g.POST("/reorder", admin, h.Reorder)
		g.PUT("/:id", admin, h.Update)
		g.DELETE("/:id", admin, h.Delete)
	}
}
