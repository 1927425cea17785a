package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir      string
	ResourcesDir string
	ExportDir    string
	DBPath       string

	IdentityRegistryPath string
	LocationRegistryPath string
	ProviderAliasPath    string
	SchemaPath           string
	SourcesPath          string

	HTTPTimeoutMs  int
	ScrapeRateRPS  int
	GeocodeRateRPS int

	GoogleAPIKey          string
	SheetsCredentialsFile string
	TranslationSheetID    string
	TranslatePollSec      int

	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	resources := getEnv("RESOURCES_DIR", filepath.Join(cwd, "resources"))

	cfg := Config{
		DataDir:      getEnv("DATA_DIR", filepath.Join(cwd, "data")),
		ResourcesDir: resources,
		ExportDir:    getEnv("EXPORT_DIR", filepath.Join(cwd, "data", "exports")),
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "index.db")),

		IdentityRegistryPath: getEnv("IDENTITY_REGISTRY_PATH", filepath.Join(resources, "uuids.json")),
		LocationRegistryPath: getEnv("LOCATION_REGISTRY_PATH", filepath.Join(resources, "locations.csv")),
		ProviderAliasPath:    getEnv("PROVIDER_ALIAS_PATH", filepath.Join(resources, "providers_remapper.json")),
		SchemaPath:           getEnv("SCHEMA_PATH", filepath.Join(resources, "schema.yaml")),
		SourcesPath:          getEnv("SOURCES_PATH", filepath.Join(resources, "sources.yaml")),

		HTTPTimeoutMs:  getEnvInt("HTTP_TIMEOUT_MS", 30000),
		ScrapeRateRPS:  getEnvInt("SCRAPE_RATE_RPS", 2),
		GeocodeRateRPS: getEnvInt("GEOCODE_RATE_RPS", 5),

		GoogleAPIKey:          getEnv("GOOGLE_API_KEY", ""),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		TranslationSheetID:    getEnv("TRANSLATION_SHEET_ID", ""),
		TranslatePollSec:      getEnvInt("TRANSLATE_POLL_SEC", 10),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
