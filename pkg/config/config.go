package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	HTTP    HTTPConfig
	DB      DBConfig
	MinIO   MinIOConfig
	Tracing TracingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del cliente REST contra el backend Impilo.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Token     string // token de servicio opcional (panel de medicamentos, herramientas offline)
	TokenFile string // persistencia del token del CLI
}

// HTTPConfig configuración del servidor HTTP del dashboard.
type HTTPConfig struct {
	Host      string
	Port      int
	PublicURL string // URL pública del dashboard; se imprime como QR en los reportes
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL para el registro de actividad.
// Si DatabaseURL y Host están vacíos el dashboard usa un registro en memoria.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base de datos configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
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
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MinIOConfig almacenamiento S3-compatible para archivar reportes PDF (opcional).
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled indica si el archivo de reportes está configurado.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// TracingConfig activa la exportación OTLP. El resto se lee de las variables OTEL_* estándar.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Protocol    string // grpc | http/protobuf
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, IMPILO_API_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	timeout := getInt(v, "IMPILO_API_TIMEOUT_SECONDS", 30)
	if timeout <= 0 {
		return nil, fmt.Errorf("config: IMPILO_API_TIMEOUT_SECONDS debe ser positivo (%d)", timeout)
	}
	appName := getString(v, "APP_NAME", "impilo-dashboard")

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     appName,
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getString(v, "IMPILO_API_BASE_URL", "http://localhost:8080/api"), "/"),
			Timeout:   time.Duration(timeout) * time.Second,
			Token:     getString(v, "IMPILO_API_TOKEN", ""),
			TokenFile: getString(v, "IMPILO_TOKEN_FILE", ""),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 3000),
			PublicURL: getString(v, "DASHBOARD_PUBLIC_URL", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "impilo_dashboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getString(v, "MINIO_ENDPOINT", ""),
			AccessKey: getString(v, "MINIO_ACCESS_KEY", ""),
			SecretKey: getString(v, "MINIO_SECRET_KEY", ""),
			Bucket:    getString(v, "MINIO_BUCKET", ""),
			UseSSL:    getBool(v, "MINIO_USE_SSL", false),
		},
		Tracing: TracingConfig{
			Enabled:     getBool(v, "TRACING_ENABLED", false),
			ServiceName: getString(v, "OTEL_SERVICE_NAME", appName),
			Protocol:    getString(v, "OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		},
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
			n, err := strconv.Atoi(v.GetString(key))
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
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
