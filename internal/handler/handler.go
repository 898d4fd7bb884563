package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/userauth-dev/userauth/internal/config"
	"github.com/userauth-dev/userauth/internal/jwt"
	"github.com/userauth-dev/userauth/internal/logger"
	"github.com/userauth-dev/userauth/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	users  service.UserService
	jwt    jwt.JwtService
	cfg    *config.Config
	health Pinger
}

func New(users service.UserService, jwtService jwt.JwtService, cfg *config.Config, health Pinger) *Handler {
	return &Handler{users: users, jwt: jwtService, cfg: cfg, health: health}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
