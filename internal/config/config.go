package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	AuthCookieSecure bool

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisAddr string

	LogLevel string

	SPF  SPFConfig
	Fuel FuelConfig
}

// SPFConfig controls the official tariff sync job.
type SPFConfig struct {
	Enabled      bool
	URL          string
	FetchTimeout time.Duration
	RunInterval  time.Duration
	Markup       float64
}

// FuelConfig carries the static fuel-sale parameters. The zone table maps
// postal codes to price-list ids; unknown codes are not served.
type FuelConfig struct {
	MinQuantity         float64
	MaxQuantity         float64
	DegressiveThreshold float64
	DefaultPostalCode   string
	Zones               map[string]int64
}

const defaultSPFURL = "https://economie.fgov.be/sites/default/files/Files/Energy/prices/Tarifs-officiels-produits-petroliers.pdf"

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "mazout"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,
		DBType:           getenv("DATABASE_TYPE", "postgres"),
		DBHost:           getenv("DATABASE_HOST", "localhost"),
		DBPort:           getenv("DATABASE_PORT", "5432"),
		DBName:           getenv("DATABASE_NAME", "postgres"),
		DBUser:           getenv("DATABASE_USER", "postgres"),
		DBPassword:       getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:        getenv("DATABASE_SSLMODE", "disable"),
		RedisAddr:        strings.TrimSpace(getenv("REDIS_ADDR", "")),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		SPF: SPFConfig{
			Enabled:      getenvBool("SPF_SYNC_ENABLED", true),
			URL:          getenv("SPF_URL", defaultSPFURL),
			FetchTimeout: getenvDuration("SPF_FETCH_TIMEOUT", 10*time.Second),
			RunInterval:  getenvDuration("SPF_RUN_INTERVAL", 24*time.Hour),
			Markup:       getenvFloat("SPF_UL_MARKUP", 0.02),
		},
		Fuel: FuelConfig{
			MinQuantity:         getenvFloat("FUEL_MIN_QUANTITY", 500),
			MaxQuantity:         getenvFloat("FUEL_MAX_QUANTITY", 3000),
			DegressiveThreshold: getenvFloat("FUEL_DEGRESSIVE_THRESHOLD", 2000),
			DefaultPostalCode:   getenv("FUEL_DEFAULT_POSTAL_CODE", "4990"),
			Zones:               parseZones(getenv("FUEL_ZONES", "4990:6,6960:12")),
		},
	}

	return cfg
}

// AllowedPostalCodes lists the served postal codes in stable order.
func (f FuelConfig) AllowedPostalCodes() []string {
	codes := make([]string, 0, len(f.Zones))
	for code := range f.Zones {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// parseZones parses "4990:6,6960:12" into a postal code → price-list id map.
// Malformed entries are skipped.
func parseZones(raw string) map[string]int64 {
	zones := make(map[string]int64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pair := strings.SplitN(part, ":", 2)
		if len(pair) != 2 {
			continue
		}
		code := strings.TrimSpace(pair[0])
		id, err := strconv.ParseInt(strings.TrimSpace(pair[1]), 10, 64)
		if err != nil || code == "" {
			continue
		}
		zones[code] = id
	}
	return zones
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
