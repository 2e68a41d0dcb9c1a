// Command sandbox runs a local backend that speaks the portal's wire
// contracts: credential exchange, the proposal catalog and the dashboard
// profile endpoints.
//
// @title                       Tender Portal Sandbox API
// @version                     1.0
// @description                 Local backend for the tender portal client.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/api"
	"github.com/tenderhub/portal-client/internal/api/handler"
	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/core/service"
	mongodb "github.com/tenderhub/portal-client/internal/infrastructure/db/mongo"
	"github.com/tenderhub/portal-client/internal/infrastructure/queue"
	"github.com/tenderhub/portal-client/internal/pkg/config"
	"github.com/tenderhub/portal-client/pkg/logger"
)

func main() {
	seed := flag.Int("seed", 0, "import this many generated proposals before serving")
	workers := flag.Int("workers", 4, "import workers used by -seed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, App: "sandbox"})

	if err := run(ctx, cfg, log, *seed, *workers); err != nil {
		log.Fatal().Err(err).Msg("sandbox stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, seed, workers int) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "tender-sandbox",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	accounts := mongodb.NewAccountRepository(db)
	proposals := mongodb.NewProposalRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("account indexes: %w", err)
	}
	if err := proposals.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("proposal indexes: %w", err)
	}

	catalog := service.NewCatalogService(proposals, logger.Component("catalog"))
	if seed > 0 {
		importProposals(ctx, catalog, seed, workers, log)
	}

	e := api.NewRouter(api.Deps{
		Accounts: service.NewAccountService(accounts, cfg.Sandbox.JWTSecret, cfg.Sandbox.TokenTTL),
		Catalog:  catalog,
		Profiles: mongodb.NewProfileRepository(db),
		Ready: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		JWTSecret: cfg.Sandbox.JWTSecret,
		Logger:    logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Sandbox.Port).Str("env", cfg.Env).Msg("sandbox listening")
		if err := e.Start(":" + cfg.Sandbox.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

var (
	seedContractors = []string{"Stroymontazh", "Gorodskie Seti", "Volga Engineering", "Severnyi Most", "Teplo Service"}
	seedFacilities  = []string{"school", "hospital", "bridge", "water plant", "library"}
	seedOkved       = []string{"41.20", "42.11", "42.21", "43.21", "71.12"}
)

func importProposals(ctx context.Context, catalog ports.CatalogService, n, workers int, log zerolog.Logger) {
	d := queue.NewDispatcher(workers, catalog, logger.Component("import"))
	d.Start(ctx)

	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		c := rand.Intn(len(seedContractors))
		facility := seedFacilities[rand.Intn(len(seedFacilities))]
		d.Enqueue(domain.Proposal{
			ProposalName:      fmt.Sprintf("%s renovation #%d", facility, i+1),
			ContractorID:      fmt.Sprintf("contractor-%d", c+1),
			ContractorName:    seedContractors[c],
			ContractorInn:     fmt.Sprintf("77%08d", c+1),
			OkvedCode:         seedOkved[rand.Intn(len(seedOkved))],
			Facility:          facility,
			SocialFacility:    facility,
			FullProposalPrice: int64(100_000 + rand.Intn(9_900_000)),
			CreatedAt:         now.AddDate(0, 0, -rand.Intn(60)),
		})
	}

	created, failed := d.Close()
	log.Info().Int64("created", created).Int64("failed", failed).Msg("seed import finished")
}
