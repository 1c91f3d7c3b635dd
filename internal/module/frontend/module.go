package frontend

import (
	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/pkg"
)

// Module serves the public reads: per-collection payloads plus the home page
// activity strip and the research aggregates.
type Module struct {
	source DataSource
}

func NewModule(source DataSource) *Module {
	return &Module{source: source}
}

func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/frontend/:collection", m.get)
	api.GET("/frontend/activities", m.activities)
	api.GET("/research/categories", m.researchCategories)
	api.GET("/research/stats", m.researchStats)
}

func (m *Module) get(c *gin.Context) {
	payload, err := m.source.Collection(c.Request.Context(), c.Param("collection"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.OK(c, payload)
}
