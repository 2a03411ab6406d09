package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bnema/ludoteca-cli/internal/adapters/hash"
	"github.com/bnema/ludoteca-cli/internal/adapters/logging"
	"github.com/bnema/ludoteca-cli/internal/adapters/render/badges"
	tomlrepo "github.com/bnema/ludoteca-cli/internal/adapters/repo/toml"
	sessionstore "github.com/bnema/ludoteca-cli/internal/adapters/session"
	"github.com/bnema/ludoteca-cli/internal/adapters/storage"
	chainstore "github.com/bnema/ludoteca-cli/internal/adapters/storage/chain"
	filestore "github.com/bnema/ludoteca-cli/internal/adapters/storage/file"
	sqlitestore "github.com/bnema/ludoteca-cli/internal/adapters/storage/sqlite"
	"github.com/bnema/ludoteca-cli/internal/adapters/transport/jsonp"
	"github.com/bnema/ludoteca-cli/internal/application"
	"github.com/bnema/ludoteca-cli/internal/config"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const sqliteFileName = "local_storage.db"

type app struct {
	cfg      config.Config
	log      *logrus.Logger
	reporter ports.ErrorReporter
	items    ports.ItemRepository
	clock    ports.Clock
	renderer func([]badges.State, badges.RenderOptions) (string, error)

	backend *backend
	closers []func() error
}

// backend holds everything that needs the endpoint; it is wired on first
// use so item commands work before an endpoint is configured.
type backend struct {
	sessions *application.SessionService
	cache    *application.ReservationCache
}

func wireApp(logOutput io.Writer) (*app, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotenv(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	v, err := config.NewViper()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log, err := logging.NewLogger(cfg.LogLevel, logOutput)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	items, err := tomlrepo.NewItemRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire item repository: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		reporter: logging.NewReporter(log),
		items:    items,
		clock:    ports.SystemClock{},
		renderer: badges.Render,
	}, nil
}

func (a *app) Backend() (*backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	if err := a.cfg.RequireEndpoint(); err != nil {
		return nil, err
	}

	origin, err := storage.Origin(a.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("derive storage origin: %w", err)
	}

	local, err := a.localStorage(origin)
	if err != nil {
		return nil, fmt.Errorf("wire local storage: %w", err)
	}

	transport, err := jsonp.NewClient(jsonp.Options{
		Endpoint:       a.cfg.Endpoint,
		RetryMax:       a.cfg.Transport.Retries,
		RequestTimeout: a.cfg.Transport.Timeout,
		Logger:         a.log,
		Clock:          a.clock,
	})
	if err != nil {
		return nil, fmt.Errorf("wire transport: %w", err)
	}

	sessions := sessionstore.NewStore(local, a.reporter)
	a.backend = &backend{
		sessions: application.NewSessionService(transport, sessions, hash.SHA256{}, a.reporter),
		cache:    application.NewReservationCache(transport, a.clock, a.reporter),
	}
	a.log.WithFields(logrus.Fields{
		"endpoint": a.cfg.Endpoint,
		"storage":  a.cfg.Storage.Backend,
		"origin":   origin,
	}).Debug("backend wired")

	return a.backend, nil
}

func (a *app) localStorage(origin string) (ports.LocalStorage, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := sqlitestore.Open(filepath.Join(a.cfg.Storage.Dir, sqliteFileName), origin)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.BackendPass:
		return chainstore.NewPassFirstWithFileFallback(a.cfg.Storage.Dir, origin)
	default:
		return filestore.NewStore(a.cfg.Storage.Dir, origin), nil
	}
}

func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) now() time.Time {
	return a.clock.Now()
}
