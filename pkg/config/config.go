package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "esencia"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Shop         ShopConfig
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
	Env          string   `envconfig:"ESENCIA_APP_ENV" required:"true"`
	Port         string   `envconfig:"ESENCIA_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"ESENCIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ESENCIA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ESENCIA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ESENCIA_DB_DSN"`

	Host     string `envconfig:"ESENCIA_DB_HOST"`
	Port     int    `envconfig:"ESENCIA_DB_PORT" default:"5432"`
	User     string `envconfig:"ESENCIA_DB_USER"`
	Password string `envconfig:"ESENCIA_DB_PASSWORD"`
	Name     string `envconfig:"ESENCIA_DB_NAME"`
	SSLMode  string `envconfig:"ESENCIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESENCIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESENCIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESENCIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESENCIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL      string `envconfig:"ESENCIA_REDIS_URL"`
	Addr     string `envconfig:"ESENCIA_REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"ESENCIA_REDIS_PASSWORD"`
	DB       int    `envconfig:"ESENCIA_REDIS_DB" default:"0"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ESENCIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ESENCIA_JWT_ISSUER" default:"esencia-api"`
	ExpirationMinutes int    `envconfig:"ESENCIA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ESENCIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ESENCIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ESENCIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ESENCIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ESENCIA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESENCIA_AUTO_MIGRATE" default:"false"`
}

// ShopConfig carries catalog-level defaults.
type ShopConfig struct {
	CustomPerfumeImageURL string `envconfig:"ESENCIA_CUSTOM_PERFUME_IMAGE_URL" default:"/images/perfume-personalizado.png"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"ESENCIA_DB_HOST": db.Host,
		"ESENCIA_DB_USER": db.User,
		"ESENCIA_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either ESENCIA_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
