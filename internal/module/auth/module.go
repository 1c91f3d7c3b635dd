package auth

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module wires the auth stack: repository, token manager, service, handler.
type Module struct {
	service *Service
	jwt     *JWTManager
	handler *Handler
}

func NewModule(db *gorm.DB, jwtSecret string, tokenExpiry time.Duration, log *slog.Logger) *Module {
	jwtManager := NewJWTManager(jwtSecret, tokenExpiry)
	service := NewService(NewUserRepository(db), jwtManager, log)
	return &Module{
		service: service,
		jwt:     jwtManager,
		handler: NewHandler(service),
	}
}

// Service exposes the auth service for startup bootstrap.
func (m *Module) Service() *Service { return m.service }

// Verifier returns the token verifier used by the admin gate middleware.
func (m *Module) Verifier() *JWTManager { return m.jwt }

func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", m.handler.Login)
}
