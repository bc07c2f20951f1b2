package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "BIBLIOTECA"

var Opts *Options

// GetConfig returns the default options with the data directory resolved.
func GetConfig() (*Options, error) {
	GetDefaultOptions()
	if err := normalize(Opts); err != nil {
		return nil, err
	}
	return Opts, nil
}

// Load builds the options from defaults, the config file (if any) and
// BIBLIOTECA_* environment variables, in increasing priority.
func Load(file string) (*Options, error) {
	GetDefaultOptions()

	v := viper.New()
	setDefaults(v, Opts)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "unable to access config file %s", file)
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	if err := v.Unmarshal(Opts); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := normalize(Opts); err != nil {
		return nil, err
	}
	return Opts, nil
}

// ParseFile loads the options from file only, without touching the data directory.
func ParseFile(file string) (*Options, error) {
	// Check if file exists
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}
	if Opts == nil {
		GetDefaultOptions()
	}

	v := viper.New()
	setDefaults(v, Opts)
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(Opts); err != nil {
		return nil, err
	}
	return Opts, nil
}

// Validate reports options the server cannot start with.
func (o *Options) Validate() error {
	switch o.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("unsupported driver %q", o.Driver)
	}
	if o.DSN == "" {
		return errors.New("dsn is required")
	}
	if o.Port <= 0 || o.Port > 65535 {
		return errors.Errorf("invalid port %d", o.Port)
	}
	if o.RateLimitEnabled && (o.RateLimitRPS <= 0 || o.RateLimitBurst <= 0) {
		return errors.New("rate limit requires positive rate_limit_rps and rate_limit_burst")
	}
	return nil
}

// Addr returns the listen address of the http server.
func (o *Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func normalize(o *Options) error {
	o.Driver = strings.ToLower(o.Driver)
	if o.Driver != DriverSQLite {
		return nil
	}

	dataDir, err := checkDataDir(o.Data)
	if err != nil {
		return errors.Wrap(err, "error checking data directory")
	}
	// Keep the database next to the data directory unless a dsn was given.
	if o.DSN == "" || o.DSN == defaultDSN {
		o.DSN = filepath.Join(dataDir, "biblioteca.db")
	}
	o.Data = dataDir
	return nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err == nil {
		return dataDir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}

	err := os.MkdirAll(dataDir, 0755)
	if err == nil {
		return dataDir, nil
	}
	if !errors.Is(err, os.ErrPermission) || dataDir != defaultData {
		return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
	}

	// Permission denied on the default folder, fall back to the user's home.
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to get current user")
	}
	if currentUser.HomeDir == "" {
		return "", errors.New("unable to get home directory")
	}
	homeData := filepath.Join(currentUser.HomeDir, ".biblioteca")
	if err := os.MkdirAll(homeData, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create default data folder %s", homeData)
	}
	return homeData, nil
}
