package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gorewood/docgen/internal/config"
	"github.com/gorewood/docgen/internal/export"
	"github.com/gorewood/docgen/internal/kv"
	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/logging"
	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/store"
)

// session holds the services a command run works with. They are opened on
// first use so help and version never touch the store.
type session struct {
	cfg      *config.Config
	logger   zerolog.Logger
	store    *store.Store
	exporter *export.Exporter
	closers  []func() error
}

// open loads configuration, the logger and the store.
func (s *session) open(cmd *cobra.Command) error {
	if s.store != nil {
		return nil
	}

	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return output.NewUserErrorWithCause("invalid configuration", err)
	}
	if driver, _ := cmd.Root().PersistentFlags().GetString("store"); driver != "" {
		cfg.Store.Driver = driver
		if err := cfg.Validate(); err != nil {
			return output.NewUserErrorWithCause("invalid --store", err)
		}
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Writer:  cmd.ErrOrStderr(),
		Console: output.IsTTY(cmd.ErrOrStderr()),
	})
	if err != nil {
		return output.NewUserErrorWithCause("invalid log settings", err)
	}
	s.closers = append(s.closers, closeLog)

	backend, err := kv.Open(cmd.Context(), cfg.KVOptions())
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Store.Driver).Msg("store unavailable")
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to open %s store", cfg.Store.Driver), err)
	}
	logger.Debug().Str("driver", cfg.Store.Driver).Str("path", cfg.Store.Path).Msg("store opened")

	s.cfg = cfg
	s.logger = logger
	s.store = store.New(backend, store.WithLogger(logger))
	s.closers = append(s.closers, s.store.Close)
	s.exporter = export.New(export.WithPDFOptions(cfg.PDFOptions()), export.WithLogger(logger))
	return nil
}

// close releases everything open opened, in reverse order.
func (s *session) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// withSession opens sess and reports failures through the printer.
func withSession(sess *session, run func(cmd *cobra.Command, args []string, printer *output.Printer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		printer := newPrinter(cmd)
		if err := sess.open(cmd); err != nil {
			printer.Error(err)
			return err
		}
		if err := run(cmd, args, printer); err != nil {
			err = classify(err)
			printer.Error(err)
			return err
		}
		return nil
	}
}

// classify maps library errors to CLI exit codes.
func classify(err error) error {
	var exitErr *output.ExitError
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, store.ErrNameTaken):
		return &output.ExitError{Code: output.ExitConflict, Message: err.Error(), Cause: err}
	case errors.Is(err, store.ErrTemplateNotFound),
		errors.Is(err, store.ErrEmptyName),
		errors.Is(err, library.ErrNotFound):
		return output.NewUserErrorWithCause(err.Error(), err)
	default:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
}
