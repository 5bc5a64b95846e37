package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bodyvault/bodyvault/internal/blobstore"
	"github.com/bodyvault/bodyvault/internal/config"
	"github.com/bodyvault/bodyvault/internal/database"
	"github.com/bodyvault/bodyvault/internal/keyring"
	"github.com/bodyvault/bodyvault/internal/services"
)

// app bundles the wired-up services every command works against.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	dbCtx    *database.Context
	keys     *keyring.Keyring
	blobs    *blobstore.Store
	photos   *services.PhotoService
	slots    *services.SlotService
	insights *services.InsightService
}

// openApp loads configuration, opens the database, and unlocks the keyring.
// Commands that only touch metadata pass needKey=false and skip the
// passphrase prompt.
func openApp(cmd *cobra.Command, needKey bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).With().Timestamp().Logger()

	// Loading the salt creates the data directory on first run.
	salt, err := keyring.LoadOrCreateSalt(cfg.SaltPath())
	if err != nil {
		return nil, err
	}

	keys := keyring.New()
	if needKey {
		passphrase := cfg.Passphrase
		if passphrase == "" {
			passphrase, err = promptPassphrase(cmd)
			if err != nil {
				return nil, err
			}
		}
		if err := keys.Unlock(passphrase, salt); err != nil {
			return nil, err
		}
	}

	dbCtx, err := database.CreateDatabase(cfg.DBPath())
	if err != nil {
		keys.Lock()
		return nil, err
	}

	blobs, err := blobstore.New(cfg.PhotosDir(), cfg.ThumbnailsDir(), keys, log)
	if err != nil {
		_ = database.CloseDatabase(dbCtx)
		keys.Lock()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		dbCtx:    dbCtx,
		keys:     keys,
		blobs:    blobs,
		photos:   services.NewPhotoService(dbCtx, blobs, cfg.ThumbnailEdge, log),
		slots:    services.NewSlotService(dbCtx),
		insights: services.NewInsightService(dbCtx),
	}, nil
}

func (a *app) close() {
	_ = database.CloseDatabase(a.dbCtx)
	a.keys.Lock()
}

func promptPassphrase(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no passphrase: set BODYVAULT_PASSPHRASE or run interactively")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
