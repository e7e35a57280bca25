package router

import (
	"github.com/avolkov/shop-api/internal/application"
	"github.com/avolkov/shop-api/internal/container"
	pginfra "github.com/avolkov/shop-api/internal/infrastructure/postgres"
	handlers "github.com/avolkov/shop-api/internal/interface/http"
	"github.com/avolkov/shop-api/internal/interface/middleware"
	"github.com/avolkov/shop-api/internal/router/modules"
)

// InitModules builds the services from container singletons and registers all
// feature modules. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	store := pginfra.NewStore(container.GetPGPool())
	users := application.NewUserService(store, container.GetRedis(), cfg.UserCacheTTL, logger)
	auth := application.NewAuthService(store, users, container.GetHasher(), container.GetJWT(), logger)

	r.Use(middleware.Authenticate(auth))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, cfg, logger, container.GetRabbitPub())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, logger)))
}
