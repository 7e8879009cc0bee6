package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lightbnb/config"
	"lightbnb/logging"
	"lightbnb/models"
	"lightbnb/storage"
)

// annotationDatabase marks commands that need a connected gateway. Set it
// on a parent and every subcommand inherits it.
const annotationDatabase = "lightbnb/database"

var configPath string

// gateway is the query surface the commands call. *storage.Gateway
// satisfies it.
type gateway interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	AddUser(ctx context.Context, u models.NewUser) (*models.User, error)
	GetReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]models.GuestReservation, error)
	GetProperties(ctx context.Context, filter models.PropertyFilter, limit int) ([]models.PropertyListing, error)
	AddProperty(ctx context.Context, p models.NewProperty) (*models.Property, error)
}

// env is the per-invocation state built before any subcommand runs.
type env struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *storage.PostgresStore
	gateway  gateway
	closeLog func() error
}

var app *env

var rootCmd = &cobra.Command{
	Use:   "lightbnb",
	Short: "LightBnB data access from the command line",
	Long: `Query and update the LightBnB database.

Connection settings default to the development database and can be
overridden with a YAML file (--config or LIGHTBNB_CONFIG) and with
LIGHTBNB_DB_* environment variables, optionally from a .env file.

Example usage:
  lightbnb user get --email alice@example.com
  lightbnb properties --city Vancouver --min-rating 4
  lightbnb property add --file property.yaml
  lightbnb monitor --cron "@every 30s"`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

// Execute runs the root command and releases the pool and log file
// whether or not the command succeeded.
func Execute() error {
	err := rootCmd.Execute()
	if app != nil {
		app.close()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

// prepare connects only for commands that query the database, so help
// and shell completion work without one. An env that is already in place
// is reused.
func prepare(cmd *cobra.Command, _ []string) error {
	if app != nil || !needsDatabase(cmd) {
		return nil
	}
	return setup(cmd)
}

func needsDatabase(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationDatabase]; ok {
			return true
		}
	}
	return false
}

func setup(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Logging, cfg.Env)
	if err != nil {
		return err
	}
	logger = logger.With().
		Str("invocation_id", uuid.NewString()).
		Str("command", cmd.CommandPath()).
		Logger()

	store, err := storage.NewPostgresStore(commandContext(cmd), cfg.Database, logger)
	if err != nil {
		logger.Error().Err(err).Str("dsn", cfg.Database.Redacted()).Msg("database unavailable")
		_ = closeLog()
		return fmt.Errorf("connect: %w", err)
	}

	app = &env{
		cfg:      cfg,
		log:      logger,
		store:    store,
		gateway:  store.Gateway(logger),
		closeLog: closeLog,
	}
	return nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
