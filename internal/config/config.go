package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetSystemUserID() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// mainConfig is resolved once at startup and read-only afterwards
type mainConfig struct {
	EnvVars
	Cors
	Security
	Storage

	invalid []string // env keys that were set but could not be parsed
}

var _ Config = mainConfig{}

// Load resolves configuration in priority order: defaults -> YAML file (CONFIG_FILE) -> env.
// Every missing required value is reported in a single error so startup fails once.
func Load() (Config, error) {
	cfg := defaults()

	if path := GetEnv(configFileEnvVar, ""); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() mainConfig {
	return mainConfig{
		EnvVars: EnvVars{
			port:         "8080",
			appName:      "Storefront API",
			env:          "DEV",
			logLevel:     "info",
			systemUserID: "system",
		},
		Cors: Cors{
			allowedOrigins: AllowedOrigins{
				"https://lab6-qlw6.onrender.com": nullValue{},
			},
		},
		Security: defaultSecurity(),
		Storage: Storage{
			driver:        StoreDriverMemory,
			mongoDatabase: "storefront",
		},
	}
}

func (c mainConfig) validate() error {
	var problems []string
	if len(c.invalid) > 0 {
		problems = append(problems, "invalid value for: "+strings.Join(c.invalid, ", "))
	}
	if c.bcryptCost < bcrypt.MinCost || c.bcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("%s must be between %d and %d", bcryptCostEnvVar, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.accessTokenTTL <= 0 || c.refreshTokenTTL <= 0 {
		problems = append(problems, "token lifetimes must be positive")
	}
	if c.rateLimitPerMinute <= 0 {
		problems = append(problems, rateLimitEnvVar+" must be positive")
	}

	var missing []string
	if c.jwtSecret == "" {
		missing = append(missing, jwtSecretEnvVar)
	}
	switch c.driver {
	case StoreDriverMongo:
		if c.mongoURI == "" {
			missing = append(missing, mongoURIEnvVar)
		}
	case StoreDriverPostgres:
		if c.databaseURL == "" {
			missing = append(missing, databaseURLEnvVar)
		}
	case StoreDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unsupported %s %q", storeDriverEnvVar, c.driver))
	}
	if len(missing) > 0 {
		problems = append(problems, "required configuration is not set: "+strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
