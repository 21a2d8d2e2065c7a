package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUCKYEGG_APP_ENV" required:"true"`
	Port         string `envconfig:"LUCKYEGG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUCKYEGG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUCKYEGG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUCKYEGG_DB_DSN"`
	Driver string `envconfig:"LUCKYEGG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUCKYEGG_DB_HOST"`
	LegacyPort     int    `envconfig:"LUCKYEGG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUCKYEGG_DB_USER"`
	LegacyPassword string `envconfig:"LUCKYEGG_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUCKYEGG_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUCKYEGG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUCKYEGG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUCKYEGG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUCKYEGG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUCKYEGG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUCKYEGG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUCKYEGG_REDIS_ADDR"`
	Password     string        `envconfig:"LUCKYEGG_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUCKYEGG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUCKYEGG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUCKYEGG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUCKYEGG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUCKYEGG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUCKYEGG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUCKYEGG_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUCKYEGG_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LUCKYEGG_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"LUCKYEGG_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUCKYEGG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUCKYEGG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUCKYEGG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUCKYEGG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUCKYEGG_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"LUCKYEGG_CART_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"LUCKYEGG_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"LUCKYEGG_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"LUCKYEGG_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"LUCKYEGG_GCS_BUCKET_NAME" default:"card-images"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"LUCKYEGG_MAX_UPLOAD_MB" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LUCKYEGG_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RateLimitConfig struct {
	AuthWindow     time.Duration `envconfig:"LUCKYEGG_AUTH_RATE_LIMIT_WINDOW" default:"1m"`
	AuthIPLimit    int           `envconfig:"LUCKYEGG_AUTH_RATE_LIMIT_IP" default:"20"`
	AuthEmailLimit int           `envconfig:"LUCKYEGG_AUTH_RATE_LIMIT_EMAIL" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LUCKYEGG_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
