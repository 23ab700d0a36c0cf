// Command tmvis collects and displays membrane protein topology annotations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rostlab/tmvis/internal/adapters/driven/config/file"
	"github.com/rostlab/tmvis/internal/adapters/driven/storage/memory"
	"github.com/rostlab/tmvis/internal/adapters/driven/storage/postgres"
	"github.com/rostlab/tmvis/internal/adapters/driven/storage/sqlite"
	"github.com/rostlab/tmvis/internal/adapters/driving/cli"
	"github.com/rostlab/tmvis/internal/connectors"
	"github.com/rostlab/tmvis/internal/connectors/alphafold"
	tmafconnector "github.com/rostlab/tmvis/internal/connectors/tmalphafold"
	uniprotconnector "github.com/rostlab/tmvis/internal/connectors/uniprot"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/core/services"
	"github.com/rostlab/tmvis/internal/logger"
	"github.com/rostlab/tmvis/internal/normalisers/membranome"
	"github.com/rostlab/tmvis/internal/normalisers/predicted"
	"github.com/rostlab/tmvis/internal/normalisers/records"
	"github.com/rostlab/tmvis/internal/normalisers/tmalphafold"
	"github.com/rostlab/tmvis/internal/normalisers/topdb"
	"github.com/rostlab/tmvis/internal/normalisers/uniprot"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		if err := settings.ApplyDatabaseURL(url); err != nil {
			return fmt.Errorf("DATABASE_URL: %w", err)
		}
	}

	store, closer, err := openStore(ctx, settings.Store)
	if err != nil {
		return err
	}
	defer closer.Close()

	registry := services.NewNormaliserRegistry(
		predicted.New(),
		topdb.New(),
		membranome.New(),
		uniprot.New(),
		tmalphafold.New(),
	)
	annotationService := services.NewAnnotationService(store, registry, records.New())
	if settings.Remote.Enabled {
		wireRemote(annotationService, settings.Remote)
	} else {
		logger.Debug("Remote lookups disabled")
	}

	proteinService := services.NewProteinService(store)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Annotation: annotationService,
		Protein:    proteinService,
		Settings:   settingsService,
	})
	return cli.Execute(ctx)
}

// openStore opens the protein store selected by the settings.
func openStore(ctx context.Context, cfg domain.StoreSettings) (driven.ProteinStore, io.Closer, error) {
	switch cfg.Backend {
	case domain.StoreBackendPostgres:
		store, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store, store, nil

	case domain.StoreBackendMemory:
		return memory.NewProteinStore(), noopCloser{}, nil

	default:
		var (
			store *sqlite.Store
			err   error
		)
		if cfg.DSN != "" {
			store, err = sqlite.Open(cfg.DSN)
		} else {
			store, err = sqlite.NewStore(cfg.DataDir)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("SQLite store at %s", store.Path())
		return store, store, nil
	}
}

// wireRemote attaches the UniProt, TmAlphaFold and AlphaFold collaborators.
func wireRemote(svc *services.AnnotationService, remote domain.RemoteSettings) {
	config := func(baseURL string) connectors.Config {
		return connectors.Config{
			BaseURL:           baseURL,
			Timeout:           remote.Timeout(),
			RequestsPerSecond: remote.RequestsPerSecond,
		}
	}
	svc.SetFetcher(uniprotconnector.New(config(remote.UniProtURL)))
	svc.SetFetcher(tmafconnector.New(config(remote.TmAlphaFoldURL)))
	svc.SetStructureFetcher(alphafold.New(config(remote.AlphaFoldURL)))
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
