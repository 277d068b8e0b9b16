package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ledgerbook-dev/ledgerbook/internal/config"
	"github.com/ledgerbook-dev/ledgerbook/internal/ledger"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
	"github.com/ledgerbook-dev/ledgerbook/internal/users"
	"github.com/ledgerbook-dev/ledgerbook/pkg/logger"
)

// env wires the config, store and services for one command invocation.
type env struct {
	cfg    *config.Config
	store  *store.Store
	ledger *ledger.Service
	users  *users.Service
	log    zerolog.Logger

	actor *model.User // set once authenticate succeeds
}

// openEnv loads the config and opens the store and services.
func openEnv(flags *rootFlags) (*env, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		store:  st,
		ledger: ledger.NewService(st, log),
		users:  users.NewService(st, cfg.Security.PasswordMinLength, log),
		log:    log,
	}, nil
}

// close records the logout for the session's actor, if any, and
// releases the store.
func (e *env) close() {
	if e.actor != nil {
		if err := e.users.Logout(context.Background(), *e.actor); err != nil {
			e.log.Warn().Err(err).Msg("recording logout")
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn().Err(err).Msg("closing store")
	}
}

// authenticate resolves the acting user from flags or environment and
// verifies the credentials. Every mutating command goes through here.
func (e *env) authenticate(ctx context.Context, flags *rootFlags) (model.User, error) {
	username := flags.username
	if username == "" {
		username = os.Getenv("LEDGERBOOK_USER")
	}
	password := flags.password
	if password == "" {
		password = os.Getenv("LEDGERBOOK_PASSWORD")
	}
	if username == "" {
		return model.User{}, errors.New("acting user required: pass --user or set LEDGERBOOK_USER")
	}

	user, err := e.users.Authenticate(ctx, username, password)
	if err != nil {
		return model.User{}, fmt.Errorf("authenticating %s: %w", username, err)
	}
	e.actor = &user
	return user, nil
}
