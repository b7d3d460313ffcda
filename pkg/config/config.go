package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Gateways soportados para LEDGER_GATEWAY.
const (
	GatewayPostgres = "postgres"
	GatewayMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Ledger LedgerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
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

// LedgerConfig parámetros del libro de saldos del personal.
type LedgerConfig struct {
	Gateway           string // postgres | memory
	AdminID           string // usuario administrador protegido
	AdminName         string
	AdminAvatar       string
	AdminPasswordHash string // bcrypt; vacío = login de admin sin contraseña
	DeleteUserPhrase  string // debe contener {name}
	TipResetPhrase    string
	Currency          string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, LEDGER_ADMIN_ID, etc.
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
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "puantaj-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "puantaj"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "puantaj-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Ledger: LedgerConfig{
			Gateway:           strings.ToLower(getString(v, "LEDGER_GATEWAY", GatewayPostgres)),
			AdminID:           getString(v, "LEDGER_ADMIN_ID", "admin"),
			AdminName:         getString(v, "LEDGER_ADMIN_NAME", "Patrón (Administrador)"),
			AdminAvatar:       getString(v, "LEDGER_ADMIN_AVATAR", "https://api.dicebear.com/7.x/avataaars/svg?seed=admin"),
			AdminPasswordHash: getString(v, "LEDGER_ADMIN_PASSWORD_HASH", ""),
			DeleteUserPhrase:  getString(v, "LEDGER_DELETE_USER_PHRASE", `quiero eliminar de verdad a "{name}"`),
			TipResetPhrase:    getString(v, "LEDGER_TIP_RESET_PHRASE", "reiniciar propinas"),
			Currency:          getString(v, "LEDGER_CURRENCY", "TL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Gateway {
	case GatewayPostgres, GatewayMemory:
	default:
		return fmt.Errorf("config: LEDGER_GATEWAY inválido %q (postgres|memory)", c.Ledger.Gateway)
	}
	if strings.TrimSpace(c.Ledger.AdminID) == "" {
		return fmt.Errorf("config: LEDGER_ADMIN_ID vacío")
	}
	if !strings.Contains(c.Ledger.DeleteUserPhrase, "{name}") {
		return fmt.Errorf("config: LEDGER_DELETE_USER_PHRASE debe contener {name}")
	}
	if c.Ledger.TipResetPhrase == "" {
		return fmt.Errorf("config: LEDGER_TIP_RESET_PHRASE vacío")
	}
	return nil
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
		return v.GetBool(key)
	}
	return def
}
