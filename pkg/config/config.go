package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Alerts   AlertConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Metrics  MetricsConfig
	Admin    AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string // vacío o inexistente = sin /docs
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres (default) o memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool // aplica migraciones goose al arrancar la API
}

// InMemory indica si se usa el almacenamiento en memoria (desarrollo y demos).
func (c DBConfig) InMemory() bool { return strings.EqualFold(c.Driver, "memory") }

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
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret       string
	Expiration   int // minutos
	Issuer       string
	CookieName   string
	SecureCookie bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AlertConfig parámetros del reporte y del escaneo de stock bajo.
type AlertConfig struct {
	DefaultThreshold int
	ScanCron         string // cron de asynq.Scheduler; vacío = sin escaneo periódico
}

// RedisConfig conexión usada por asynq. Addr vacío desactiva la cola.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// TelegramConfig bot para avisos de stock bajo. Token vacío = desactivado.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// MetricsConfig exposición de /metrics.
type MetricsConfig struct {
	Enabled bool
}

// AdminConfig usuario administrador que la API crea al arrancar si no existe.
type AdminConfig struct {
	Username string
	Password string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; no sobrescribe variables ya definidas
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "bodega"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bodega"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 20),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			Expiration:   getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:       getString(v, "JWT_ISSUER", "bodega"),
			CookieName:   getString(v, "JWT_COOKIE_NAME", "access_token"),
			SecureCookie: getBool(v, "JWT_SECURE_COOKIE", false),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Alerts: AlertConfig{
			DefaultThreshold: getInt(v, "ALERT_DEFAULT_THRESHOLD", 10),
			ScanCron:         getString(v, "ALERT_SCAN_CRON", "0 7 * * *"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Telegram: TelegramConfig{
			Token:  getString(v, "TELEGRAM_TOKEN", ""),
			ChatID: int64(getInt(v, "TELEGRAM_CHAT_ID", 0)),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		Admin: AdminConfig{
			Username: getString(v, "BOOTSTRAP_ADMIN_USERNAME", ""),
			Password: getString(v, "BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
