package config

const (
	defaultLogFile           = "biblioteca.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultDriver            = DriverSQLite
	defaultData              = "/var/opt/biblioteca"
	defaultDSN               = defaultData + "/biblioteca.db"
	defaultHost              = "0.0.0.0"
	defaultPort              = 8080
	defaultReadTimeout       = 5
	defaultWriteTimeout      = 10
	defaultIdleTimeout       = 60
	defaultShutdownTimeout   = 20
	defaultAuditLog          = true
	defaultRateLimitEnabled  = true
	defaultRateLimitRPS      = 10
	defaultRateLimitBurst    = 20
	defaultCORSAllowedOrigin = "*"
	defaultJWTSecret         = ""
	defaultMaxBodySize       = 1 << 20
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFilemaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Driver is the storage engine, sqlite or postgres
	Driver string `mapstructure:"driver"`
	// DSN is the data source name handed to the driver
	DSN string `mapstructure:"dsn"`
	// Data is the directory holding the sqlite database
	Data string `mapstructure:"data"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Timeouts of the http server, in seconds
	ReadTimeout     int `mapstructure:"read_timeout"`
	WriteTimeout    int `mapstructure:"write_timeout"`
	IdleTimeout     int `mapstructure:"idle_timeout"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
	// AuditLog records every mutation in the logs table
	AuditLog bool `mapstructure:"audit_log"`
	// For the per-ip rate limiter
	RateLimitEnabled bool    `mapstructure:"rate_limit_enabled"`
	RateLimitRPS     float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst   int     `mapstructure:"rate_limit_burst"`
	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin"`
	// JWTSecret enables the bearer token guard on write requests when not empty
	JWTSecret string `mapstructure:"jwt_secret"`
	// MaxBodySize is the maximum size of a request body, in bytes
	MaxBodySize int64 `mapstructure:"max_body_size"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Driver:            defaultDriver,
		DSN:               defaultDSN,
		Data:              defaultData,
		Host:              defaultHost,
		Port:              defaultPort,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ShutdownTimeout:   defaultShutdownTimeout,
		AuditLog:          defaultAuditLog,
		RateLimitEnabled:  defaultRateLimitEnabled,
		RateLimitRPS:      defaultRateLimitRPS,
		RateLimitBurst:    defaultRateLimitBurst,
		CORSAllowedOrigin: defaultCORSAllowedOrigin,
		JWTSecret:         defaultJWTSecret,
		MaxBodySize:       defaultMaxBodySize,
	}
	return Opts
}

// setDefaults registers every default with viper so that environment
// variables are picked up for keys that are not present in a config file.
func setDefaults(v interface{ SetDefault(string, any) }, o *Options) {
	v.SetDefault("log_file", o.LogFile)
	v.SetDefault("log_level", o.LogLevel)
	v.SetDefault("log_file_max_size", o.LogFileMaxSize)
	v.SetDefault("log_file_max_backups", o.LogFileMaxBackups)
	v.SetDefault("log_file_max_age", o.LogFileMaxAge)
	v.SetDefault("log_compress", o.LogCompress)
	v.SetDefault("driver", o.Driver)
	v.SetDefault("dsn", o.DSN)
	v.SetDefault("data", o.Data)
	v.SetDefault("host", o.Host)
	v.SetDefault("port", o.Port)
	v.SetDefault("read_timeout", o.ReadTimeout)
	v.SetDefault("write_timeout", o.WriteTimeout)
	v.SetDefault("idle_timeout", o.IdleTimeout)
	v.SetDefault("shutdown_timeout", o.ShutdownTimeout)
	v.SetDefault("audit_log", o.AuditLog)
	v.SetDefault("rate_limit_enabled", o.RateLimitEnabled)
	v.SetDefault("rate_limit_rps", o.RateLimitRPS)
	v.SetDefault("rate_limit_burst", o.RateLimitBurst)
	v.SetDefault("cors_allowed_origin", o.CORSAllowedOrigin)
	v.SetDefault("jwt_secret", o.JWTSecret)
	v.SetDefault("max_body_size", o.MaxBodySize)
}
