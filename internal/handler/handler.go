package handler

import (
	"context"

	"github.com/okibe-dev/okibe/internal/config"
	"github.com/okibe-dev/okibe/internal/jwt"
	"github.com/okibe-dev/okibe/internal/service"
)

// Pinger reports storage liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	post   service.PostService
	board  service.BoardService
	report service.ReportService
	health Pinger
	cfg    *config.Config
	jwt    *jwt.Jwt
}

func New(post service.PostService, board service.BoardService, report service.ReportService, health Pinger, cfg *config.Config, jwt *jwt.Jwt) *Handler {
	return &Handler{post, board, report, health, cfg, jwt}
}
