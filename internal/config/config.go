package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Engine    EngineConfig    `yaml:"engine"`
	Dispatch  DispatchConfig  `yaml:"dispatch"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Api-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitRPS bounds requests per second per client address. Zero disables it.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"   env:"SERVER_RATE_LIMIT_RPS"   env-default:"50"`
	RateLimitBurst int     `yaml:"rate_limit_burst" env:"SERVER_RATE_LIMIT_BURST" env-default:"100"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AppName         string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"oracle"`
	// StatementTimeout bounds every statement on the pool. Zero leaves the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
}

// RedisConfig holds settings for the distributed lock backend.
// An empty Addr falls back to PostgreSQL advisory locks.
type RedisConfig struct {
	Addr     string        `yaml:"addr"      env:"REDIS_ADDR"`
	Password string        `yaml:"password"  env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"        env:"REDIS_DB"        env-default:"0"`
	LockTTL  time.Duration `yaml:"lock_ttl"  env:"REDIS_LOCK_TTL"  env-default:"2m"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// AuthConfig holds operator authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"learning-oracle"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
	// APIKeyHash is a bcrypt hash of the key accepted in the X-Api-Key header.
	// Empty disables API key authentication.
	APIKeyHash string `yaml:"api_key_hash" env:"AUTH_API_KEY_HASH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// EngineConfig holds tunables of the classification, evaluation and execution passes.
type EngineConfig struct {
	ClassifyBatchLimit int           `yaml:"classify_batch_limit" env:"ENGINE_CLASSIFY_BATCH_LIMIT" env-default:"500"`
	CandidateCap       int           `yaml:"candidate_cap"        env:"ENGINE_CANDIDATE_CAP"        env-default:"500"`
	ExecuteBatchLimit  int           `yaml:"execute_batch_limit"  env:"ENGINE_EXECUTE_BATCH_LIMIT"  env-default:"100"`
	Workers            int           `yaml:"workers"              env:"ENGINE_WORKERS"              env-default:"8"`
	ApprovalThreshold  int           `yaml:"approval_threshold"   env:"ENGINE_APPROVAL_THRESHOLD"   env-default:"8"`
	AtRiskThreshold    int           `yaml:"at_risk_threshold"    env:"ENGINE_AT_RISK_THRESHOLD"    env-default:"70"`
	PassTimeout        time.Duration `yaml:"pass_timeout"         env:"ENGINE_PASS_TIMEOUT"         env-default:"5m"`
	PendingExpiry      time.Duration `yaml:"pending_expiry"       env:"ENGINE_PENDING_EXPIRY"       env-default:"168h"`
}

// DispatchConfig holds settings of the side-effect handlers.
type DispatchConfig struct {
	// DMSenderUserID is the account direct messages are sent from.
	DMSenderUserID string  `yaml:"dm_sender_user_id" env:"DISPATCH_DM_SENDER_USER_ID"`
	RatePerSecond  float64 `yaml:"rate_per_second"   env:"DISPATCH_RATE_PER_SECOND"   env-default:"20"`
	Burst          int     `yaml:"burst"             env:"DISPATCH_BURST"             env-default:"5"`
}

// SchedulerConfig holds cron specs of the in-process scheduler.
// An empty spec disables the corresponding pass.
type SchedulerConfig struct {
	// Embedded runs the scheduler inside the API server process.
	Embedded     bool   `yaml:"embedded"      env:"SCHEDULER_EMBEDDED"      env-default:"false"`
	ClassifyCron string `yaml:"classify_cron" env:"SCHEDULER_CLASSIFY_CRON" env-default:"0 * * * *"`
	EvaluateCron string `yaml:"evaluate_cron" env:"SCHEDULER_EVALUATE_CRON" env-default:"15 * * * *"`
	ExecuteCron  string `yaml:"execute_cron"  env:"SCHEDULER_EXECUTE_CRON"  env-default:"*/5 * * * *"`
	ExpireCron   string `yaml:"expire_cron"   env:"SCHEDULER_EXPIRE_CRON"   env-default:"30 3 * * *"`
}
