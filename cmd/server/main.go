package main

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mailico/mailico/modules/dispatch"
	"github.com/mailico/mailico/pkg/config"
	"github.com/mailico/mailico/pkg/httpserver"
	"github.com/mailico/mailico/pkg/logger"
	"github.com/mailico/mailico/pkg/mailer"
	"github.com/mailico/mailico/pkg/pg"
	"github.com/mailico/mailico/pkg/quota"
)

type appConfig struct {
	Logger logger.Config
	PG     pg.Config
	HTTP   httpserver.Config

	// DevMailer swaps the live provider for a logging sender.
	DevMailer bool `env:"MAILER_DEV" envDefault:"false"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Logger, logger.WithAttr(logger.Component("server")))
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	var sender mailer.Sender = mailer.NewResendSender()
	if cfg.DevMailer {
		sender = mailer.NewDevSender(log)
	}

	store := dispatch.NewPGStore(pool)
	ledger := quota.NewPGLedger(pool)
	svc := dispatch.NewService(store, store, store, ledger, sender, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
	r.Mount("/api", dispatch.Router(svc, sessionVerifier(), log))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// sessionVerifier bridges the external identity provider. Until that
// integration lands, tokens are the identity provider's opaque session ids,
// which it mints as the account UUID.
//
// TODO: replace with the identity provider's token introspection endpoint
// once its service account is provisioned.
func sessionVerifier() dispatch.IdentityVerifier {
	return dispatch.VerifierFunc(func(ctx context.Context, token string) (uuid.UUID, error) {
		return uuid.Parse(token)
	})
}
