package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de persistencia soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	Storage string // postgres | memory
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// IsDevelopment indica si se corre en entorno local.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	ForceIPv4   bool // resolver el host a IPv4 (Docker sin IPv6)
	Migrate     bool // aplicar migraciones goose al arrancar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché de lecturas del árbol. Addr vacío desactiva la caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled indica si hay que conectar a Redis.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "zmitacart-catalog"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "zmitacart"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		Storage: strings.ToLower(getString(v, "STORAGE", StoragePostgres)),
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "zmitacart"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      time.Duration(getInt(v, "CATEGORY_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba combinaciones que impedirían arrancar.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE desconocido: %q", c.Storage))
	}
	if c.JWT.Secret == "" && !c.App.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET es obligatorio fuera de development"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port))
	}
	if c.DB.MinConns > c.DB.MaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) mayor que DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return b
	}
	return v.GetBool(key)
}
