package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	configFileEnvVar      = "CONFIG_FILE"
	portEnvVar            = "PORT"
	appNameVar            = "APP_NAME"
	envVar                = "ENV"
	logLevelEnvVar        = "LOG_LEVEL"
	systemUserIDEnvVar    = "SYSTEM_USER_ID"
	jwtSecretEnvVar       = "JWT_SECRET"
	bcryptCostEnvVar      = "BCRYPT_COST"
	accessTokenTTLEnvVar  = "ACCESS_TOKEN_TTL"
	refreshTokenTTLEnvVar = "REFRESH_TOKEN_TTL"
	rateLimitEnvVar       = "RATE_LIMIT_PER_MINUTE"
	rateLimitOnEnvVar     = "RATE_LIMIT_ENABLED"
	allowedOriginsEnvVar  = "ALLOWED_ORIGINS"
	storeDriverEnvVar     = "STORE_DRIVER"
	mongoURIEnvVar        = "MONGO_URI"
	mongoDatabaseEnvVar   = "MONGO_DATABASE"
	databaseURLEnvVar     = "DATABASE_URL"
)

type EnvVars struct {
	port         string
	appName      string
	env          string
	logLevel     string
	systemUserID string
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.port, ":") {
		return e.port
	}
	return ":" + e.port
}

func (e EnvVars) GetAppName() string {
	return e.appName
}

func (e EnvVars) GetEnv() string {
	return e.env
}

func (e EnvVars) GetLogLevel() string {
	return e.logLevel
}

// GetSystemUserID is the identity recorded as createdBy when no caller identity applies
func (e EnvVars) GetSystemUserID() string {
	return e.systemUserID
}

func applyEnv(c *mainConfig) {
	c.port = GetEnv(portEnvVar, c.port)
	c.appName = GetEnv(appNameVar, c.appName)
	c.env = strings.ToUpper(GetEnv(envVar, c.env))
	c.logLevel = GetEnv(logLevelEnvVar, c.logLevel)
	c.systemUserID = GetEnv(systemUserIDEnvVar, c.systemUserID)

	c.jwtSecret = GetEnv(jwtSecretEnvVar, c.jwtSecret)
	c.bcryptCost = getEnvInt(bcryptCostEnvVar, c.bcryptCost, &c.invalid)
	c.accessTokenTTL = getEnvDuration(accessTokenTTLEnvVar, c.accessTokenTTL, &c.invalid)
	c.refreshTokenTTL = getEnvDuration(refreshTokenTTLEnvVar, c.refreshTokenTTL, &c.invalid)
	c.rateLimitPerMinute = getEnvInt(rateLimitEnvVar, c.rateLimitPerMinute, &c.invalid)
	c.rateLimitEnabled = getEnvBool(rateLimitOnEnvVar, c.rateLimitEnabled, &c.invalid)

	if origins := GetEnv(allowedOriginsEnvVar, ""); origins != "" {
		c.allowedOrigins = ParseAllowedOrigins(origins)
	}

	c.driver = StoreDriver(strings.ToLower(GetEnv(storeDriverEnvVar, string(c.driver))))
	c.mongoURI = GetEnv(mongoURIEnvVar, c.mongoURI)
	c.mongoDatabase = GetEnv(mongoDatabaseEnvVar, c.mongoDatabase)
	c.databaseURL = GetEnv(databaseURLEnvVar, c.databaseURL)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// The typed getters keep defaultVal when key is unset. A set but unparsable value
// keeps defaultVal and appends key to invalid so Load can reject it.
func getEnvInt(key string, defaultVal int, invalid *[]string) int {
	return getEnvParsed(key, defaultVal, strconv.Atoi, invalid)
}

func getEnvBool(key string, defaultVal bool, invalid *[]string) bool {
	return getEnvParsed(key, defaultVal, strconv.ParseBool, invalid)
}

func getEnvDuration(key string, defaultVal time.Duration, invalid *[]string) time.Duration {
	return getEnvParsed(key, defaultVal, time.ParseDuration, invalid)
}

func getEnvParsed[T any](key string, defaultVal T, parse func(string) (T, error), invalid *[]string) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}
	v, err := parse(raw)
	if err != nil {
		*invalid = append(*invalid, key)
		return defaultVal
	}
	return v
}
