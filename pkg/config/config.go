package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Password PasswordConfig
	Admin    AdminConfig
	Media    MediaConfig
	Chat     ChatConfig
	Geocode  GeocodeConfig
	Cart     CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"CASAMARIA_APP_ENV" default:"development"`
	Port         string   `envconfig:"CASAMARIA_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"CASAMARIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"CASAMARIA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"CASAMARIA_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig carries the storefront identity used in checkout messages.
type StoreConfig struct {
	SiteName       string `envconfig:"CASAMARIA_SITE_NAME" default:"Casa María Burguer"`
	CurrencyPrefix string `envconfig:"CASAMARIA_CURRENCY_PREFIX" default:"$ "`
	Locale         string `envconfig:"CASAMARIA_LOCALE" default:"es-CO"`
	WhatsAppPhone  string `envconfig:"CASAMARIA_WHATSAPP_PHONE" default:"573213131109"`
	Address        string `envconfig:"CASAMARIA_ADDRESS" default:"Av. Principal, Casa María Burguer"`
}

// StorageConfig bounds the local key-value store that backs all persistence.
type StorageConfig struct {
	Path          string `envconfig:"CASAMARIA_STORAGE_PATH" default:"storefront.db"`
	MaxValueBytes int64  `envconfig:"CASAMARIA_STORAGE_MAX_VALUE_BYTES" default:"2097152"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CASAMARIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CASAMARIA_JWT_ISSUER" default:"casamaria-storefront"`
	ExpirationMinutes int    `envconfig:"CASAMARIA_JWT_EXPIRATION_MINUTES" default:"1440"`
}

func (j JWTConfig) Expiration() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CASAMARIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CASAMARIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CASAMARIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CASAMARIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CASAMARIA_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig seeds the single admin profile on first run. The defaults are a
// bootstrap credential only; the service logs a warning on every start until
// the password is changed.
type AdminConfig struct {
	BootstrapEmail    string `envconfig:"CASAMARIA_ADMIN_BOOTSTRAP_EMAIL" default:"admin@casamaria.com"`
	BootstrapPassword string `envconfig:"CASAMARIA_ADMIN_BOOTSTRAP_PASSWORD" default:"admin123"`
}

type MediaConfig struct {
	MaxUploadMB    int `envconfig:"CASAMARIA_MEDIA_MAX_UPLOAD_MB" default:"8"`
	ItemImageSize  int `envconfig:"CASAMARIA_MEDIA_ITEM_IMAGE_SIZE" default:"600"`
	HeroWidth      int `envconfig:"CASAMARIA_MEDIA_HERO_WIDTH" default:"1920"`
	HeroHeight     int `envconfig:"CASAMARIA_MEDIA_HERO_HEIGHT" default:"1080"`
	JPEGQuality    int `envconfig:"CASAMARIA_MEDIA_JPEG_QUALITY" default:"85"`
	MaxOutputBytes int `envconfig:"CASAMARIA_MEDIA_MAX_OUTPUT_BYTES" default:"1048576"`
}

type ChatConfig struct {
	APIKey  string        `envconfig:"CASAMARIA_CHAT_API_KEY"`
	BaseURL string        `envconfig:"CASAMARIA_CHAT_BASE_URL" default:"https://api.openai.com/v1"`
	Model   string        `envconfig:"CASAMARIA_CHAT_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"CASAMARIA_CHAT_TIMEOUT" default:"30s"`
}

type GeocodeConfig struct {
	BaseURL   string        `envconfig:"CASAMARIA_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `envconfig:"CASAMARIA_GEOCODE_USER_AGENT" default:"casamaria-storefront/1.0"`
	Timeout   time.Duration `envconfig:"CASAMARIA_GEOCODE_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"CASAMARIA_CART_TTL" default:"6h"`
}
