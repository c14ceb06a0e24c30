package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/okibe-dev/okibe/internal/config"
	"github.com/okibe-dev/okibe/internal/cooldown"
	"github.com/okibe-dev/okibe/internal/fileproc"
	"github.com/okibe-dev/okibe/internal/handler"
	"github.com/okibe-dev/okibe/internal/jwt"
	"github.com/okibe-dev/okibe/internal/service"
	"github.com/okibe-dev/okibe/internal/storage/fs"
	"github.com/okibe-dev/okibe/internal/storage/pg"
	"github.com/okibe-dev/okibe/internal/storage/s3"
)

// idle buckets older than this are pruned from the cooldown gates
const gateIdle = 24 * time.Hour

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage  *pg.Storage
	Handler  *handler.Handler
	Jwt      *jwt.Jwt
	PostGate *cooldown.Gate
	Media    service.MediaStore
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := newMediaStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	files := fileproc.New(media, cfg.Public.AllowedMimeTypes, cfg.Public.ThumbWidth, cfg.Public.ThumbQuality)

	postGate := cooldown.New(cfg.Public.PostCooldown*time.Second, cfg.Public.PostBurst, gateIdle)
	reportGate := cooldown.New(cfg.Public.ReportCooldown*time.Second, 1, gateIdle)

	post := service.NewPost(storage, files, media)
	board := service.NewBoard(storage, media)
	report := service.NewReport(storage, reportGate)

	h := handler.New(post, board, report, storage, cfg, jwtService)

	return &Dependencies{
		Storage:  storage,
		Handler:  h,
		Jwt:      jwtService,
		PostGate: postGate,
		Media:    media,
	}, nil
}

func newMediaStore(ctx context.Context, cfg *config.Config) (service.MediaStore, error) {
	switch cfg.Public.Media.Backend {
	case "", "fs":
		return fs.New(cfg.Public.Media.Root)
	case "s3":
		s3cfg := cfg.Public.Media.S3
		return s3.New(s3cfg.Endpoint, cfg.Private.S3AccessKey, cfg.Private.S3SecretKey, s3cfg.Bucket, s3cfg.Region, s3cfg.UseSSL)
	}
	return nil, fmt.Errorf("unknown media backend %q", cfg.Public.Media.Backend)
}
