package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/storage/sqlite"
	"github.com/robalobadob/wordscramble/internal/store"
)

// NewServeCommand creates the serve command, which runs the HTTP API.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				opts.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port; overrides PORT")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg := opts.cfg

	lex, err := opts.loadLexicon()
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}
	roots, dict := lex.Stats()
	log.Info().Int("roots", roots).Int("dictionary", dict).Msg("word lists loaded")

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := sqlite.Migrate(db, assets.Migrations()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var st store.Store
	switch cfg.Store.Kind {
	case "redis":
		client, err := store.Dial(ctx, cfg.Store.RedisAddr)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("could not close redis client")
			}
		}()
		st = store.NewRedisStore(client, cfg.Store.RoundTTL)
	default:
		st = store.NewMemoryStore()
	}

	srv := httpserver.New(cfg, st, db, lex)
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Kind).Msg("starting wordscramble server")
	return srv.Start(ctx, ":"+cfg.Port)
}
