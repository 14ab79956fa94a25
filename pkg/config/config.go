package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const devSessionSecret = "deye-legliz-dev-secret"

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	FirebaseAPIKey  string
	StorageBucket   string

	ServiceAccountJSON string
	ServiceAccountPath string

	SessionSecret      string
	CountryCallingCode string
	CORSOrigins        []string
	PublicBaseURL      string
	SupportWhatsapp    string

	RecaptchaEnabled   bool
	RecaptchaSiteKey   string
	RecaptchaMinScore  float64
	SendCodePerMinute  int64
	VerificationTTLMin int64
	VendorTrialDays    int64

	SubscriptionSweepSpec   string
	VerificationCleanupSpec string
	LogFileEnable           bool
	LogFilename             string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseAPIKey:  getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),

		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		SessionSecret:      getEnv("SESSION_SECRET", ""),
		CountryCallingCode: getEnv("COUNTRY_CALLING_CODE", "509"),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"*"}),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "https://deyelegliz.com"),
		SupportWhatsapp:    getEnv("SUPPORT_WHATSAPP", "50931813578"),

		RecaptchaEnabled:   getEnvAsBool("RECAPTCHA_ENABLED", false),
		RecaptchaSiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaMinScore:  getEnvAsFloat("RECAPTCHA_MIN_SCORE", 0.5),
		SendCodePerMinute:  getEnvAsInt64("SEND_CODE_PER_MINUTE", 5),
		VerificationTTLMin: getEnvAsInt64("VERIFICATION_TTL_MINUTES", 15),
		VendorTrialDays:    getEnvAsInt64("VENDOR_TRIAL_DAYS", 30),

		SubscriptionSweepSpec:   getEnv("SUBSCRIPTION_SWEEP_SPEC", "@every 1h"),
		VerificationCleanupSpec: getEnv("VERIFICATION_CLEANUP_SPEC", "@every 30m"),
		LogFileEnable:           getEnvAsBool("LOG_FILE_ENABLE", false),
		LogFilename:             getEnv("LOG_FILENAME", "logs/deyelegliz.log"),
	}

	if config.SessionSecret == "" {
		if config.IsProduction() {
			return nil, errors.New("SESSION_SECRET must be set in production")
		}
		config.SessionSecret = devSessionSecret
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
