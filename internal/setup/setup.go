package setup

import (
	"context"

	"github.com/userauth-dev/userauth/internal/config"
	"github.com/userauth-dev/userauth/internal/handler"
	"github.com/userauth-dev/userauth/internal/jwt"
	"github.com/userauth-dev/userauth/internal/logger"
	"github.com/userauth-dev/userauth/internal/mailer"
	"github.com/userauth-dev/userauth/internal/middleware"
	"github.com/userauth-dev/userauth/internal/service"
	"github.com/userauth-dev/userauth/internal/storage/mongodb"
	"github.com/userauth-dev/userauth/internal/token"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *mongodb.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Jwt            jwt.JwtService
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := mongodb.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens := token.New(cfg.SecretKey(), cfg.PasswordSalt())
	mail := mailer.NewSender(cfg.Public.Env, cfg.Resend().APIKey, cfg.Resend().From, logger.Log)
	jwtService := jwt.New(cfg.JwtKey(), cfg.SessionTTL())

	users := service.NewUsers(storage, tokens, mail, cfg)

	h := handler.New(users, jwtService, cfg, storage)
	authMw := middleware.NewAuth(jwtService)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: authMw,
		Jwt:            jwtService,
		Config:         cfg,
	}, nil
}
