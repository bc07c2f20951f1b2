package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/auth"
	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/log"
	"github.com/Xunop/biblioteca/internal/server"
	"github.com/Xunop/biblioteca/internal/store"
	"github.com/Xunop/biblioteca/internal/store/db"
	"github.com/Xunop/biblioteca/internal/version"
)

const (
	greetingBanner = `
█████  ██ █████  ██      ██  ██████  ████████ ███████  ██████  █████
██  ██ ██ ██  ██ ██      ██ ██    ██    ██    ██      ██      ██   ██
█████  ██ █████  ██      ██ ██    ██    ██    █████   ██      ███████
██  ██ ██ ██  ██ ██      ██ ██    ██    ██    ██      ██      ██   ██
█████  ██ █████  ███████ ██  ██████     ██    ███████  ██████ ██   ██
`
)

var (
	configFile string
	driver     string
	dsn        string
	data       string
	host       string
	port       int
	logLevel   string

	tokenSubject string
	tokenTTL     time.Duration

	rootCmd = &cobra.Command{
		Use:   "biblioteca",
		Short: "Biblioteca is a library management service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database to the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				return errors.Wrap(err, "failed to migrate database")
			}
			log.Info("Database migrated", zap.String("version", version.GetCurrentVersion()))
			return nil
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Print an access token for write requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Opts.JWTSecret == "" {
				return errors.New("jwt_secret is not configured, write requests are not guarded")
			}
			var expireTime time.Time
			if tokenTTL > 0 {
				expireTime = time.Now().Add(tokenTTL)
			}
			token, err := auth.GenerateAccessToken(tokenSubject, expireTime, []byte(config.Opts.JWTSecret))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetCurrentVersion())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver, sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database source name")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory of the sqlite database")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "address to listen on")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "librarian", "subject of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.AccessTokenDuration, "lifetime of the token, 0 never expires")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, versionCmd)
}

// loadConfig reads the options and lets flags given on the command line win.
func loadConfig(cmd *cobra.Command) error {
	opts, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		opts.Driver = driver
	}
	if flags.Changed("dsn") {
		opts.DSN = dsn
	}
	if flags.Changed("data") && !flags.Changed("dsn") && opts.Driver == config.DriverSQLite {
		opts.Data = data
		opts.DSN = filepath.Join(data, "biblioteca.db")
	}
	if flags.Changed("host") {
		opts.Host = host
	}
	if flags.Changed("port") {
		opts.Port = port
	}
	if flags.Changed("log-level") {
		opts.LogLevel = logLevel
	}
	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	log.Logger = log.NewLogger()
	return nil
}

func openDB(ctx context.Context) (*db.DB, error) {
	d, err := db.NewDB(config.Opts.Driver, config.Opts.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return d, nil
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Migrate(ctx); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	s := server.NewServer(ctx, store.NewStore(d, store.WithAuditLog(config.Opts.AuditLog)), config.Opts)
	errCh := s.Start()
	fmt.Print(greetingBanner)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}
	return s.Shutdown(context.Background())
}

func main() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Error("Exiting", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		log.Sync()
		os.Exit(1)
	}
}
