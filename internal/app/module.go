package app

import "github.com/gin-gonic/gin"

// Module is implemented by feature modules that register routes under /api.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup)
}
