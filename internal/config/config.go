package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultTimesJobsURL = "https://www.timesjobs.com/candidate/job-search.html?searchType=personalizedSearch&from=submit&txtKeywords=software+engineer&txtLocation=India"
	DefaultJoobleAPIURL = "https://api.jooble.io/{key}/"
)

type Config struct {
	Port              string
	Env               string // either prod or dev, will disable https and few other bits
	DataDir           string // directory holding the json collections
	SessionKey        []byte
	JwtSigningKey     []byte
	TokenExpiration   time.Duration
	CORSOrigins       []string
	SentryDSN         string
	RedisURL          string // optional, enables the cross process store lock
	JobsCacheTTL      time.Duration
	TimesJobsURL      string
	JoobleAPIURL      string // {key} is replaced with JoobleAPIKey
	JoobleAPIKey      string
	AggregateSearch   string
	AggregateLocation string
	AggregateSchedule string // cron spec, e.g. "@every 6h", empty disables
	SeedTestUser      bool
}

// LoadConfig reads the configuration from the environment. envFile is
// loaded first when it exists, values already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "unable to load env file %s", envFile)
		}
	}
	env := strings.ToLower(getEnv("ENV", "dev"))
	if env != "dev" && env != "prod" {
		return Config{}, fmt.Errorf("ENV must be either dev or prod, got %q", env)
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	tokenExpiration, err := time.ParseDuration(getEnv("TOKEN_EXPIRATION", "1h"))
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to parse TOKEN_EXPIRATION")
	}
	jobsCacheTTL, err := time.ParseDuration(getEnv("JOBS_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to parse JOBS_CACHE_TTL")
	}
	seedTestUser, err := strconv.ParseBool(getEnv("SEED_TEST_USER", strconv.FormatBool(env == "dev")))
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to parse SEED_TEST_USER")
	}
	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5176"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:              getEnv("PORT", "5000"),
		Env:               env,
		DataDir:           getEnv("DATA_DIR", "data"),
		SessionKey:        sessionKeyBytes,
		JwtSigningKey:     jwtSigningKeyBytes,
		TokenExpiration:   tokenExpiration,
		CORSOrigins:       origins,
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		RedisURL:          os.Getenv("REDIS_URL"),
		JobsCacheTTL:      jobsCacheTTL,
		TimesJobsURL:      getEnv("TIMESJOBS_URL", DefaultTimesJobsURL),
		JoobleAPIURL:      getEnv("JOOBLE_API_URL", DefaultJoobleAPIURL),
		JoobleAPIKey:      os.Getenv("JOOBLE_API_KEY"),
		AggregateSearch:   getEnv("AGGREGATE_SEARCH", "software engineer"),
		AggregateLocation: getEnv("AGGREGATE_LOCATION", "India"),
		AggregateSchedule: os.Getenv("AGGREGATE_SCHEDULE"),
		SeedTestUser:      seedTestUser,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
