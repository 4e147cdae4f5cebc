package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// configFile mirrors the optional YAML file. Only non-zero values override defaults.
type configFile struct {
	Server struct {
		Port         string `yaml:"port"`
		AppName      string `yaml:"app_name"`
		Env          string `yaml:"env"`
		LogLevel     string `yaml:"log_level"`
		SystemUserID string `yaml:"system_user_id"`
	} `yaml:"server"`
	Security struct {
		BcryptCost         int           `yaml:"bcrypt_cost"`
		AccessTokenTTL     time.Duration `yaml:"access_token_ttl"`
		RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl"`
		RateLimitEnabled   *bool         `yaml:"rate_limit_enabled"`
		RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	} `yaml:"security"`
	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Storage struct {
		Driver        string `yaml:"driver"`
		MongoURI      string `yaml:"mongo_uri"`
		MongoDatabase string `yaml:"mongo_database"`
		DatabaseURL   string `yaml:"database_url"`
	} `yaml:"storage"`
}

// applyFile overlays values from a YAML file. The signing secret only comes from the environment.
func applyFile(c *mainConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.port, f.Server.Port)
	setString(&c.appName, f.Server.AppName)
	setString(&c.env, f.Server.Env)
	setString(&c.logLevel, f.Server.LogLevel)
	setString(&c.systemUserID, f.Server.SystemUserID)

	if f.Security.BcryptCost > 0 {
		c.bcryptCost = f.Security.BcryptCost
	}
	if f.Security.AccessTokenTTL > 0 {
		c.accessTokenTTL = f.Security.AccessTokenTTL
	}
	if f.Security.RefreshTokenTTL > 0 {
		c.refreshTokenTTL = f.Security.RefreshTokenTTL
	}
	if f.Security.RateLimitEnabled != nil {
		c.rateLimitEnabled = *f.Security.RateLimitEnabled
	}
	if f.Security.RateLimitPerMinute > 0 {
		c.rateLimitPerMinute = f.Security.RateLimitPerMinute
	}

	if len(f.Cors.AllowedOrigins) > 0 {
		origins := AllowedOrigins{}
		for _, o := range f.Cors.AllowedOrigins {
			origins[o] = nullValue{}
		}
		c.allowedOrigins = origins
	}

	if f.Storage.Driver != "" {
		c.driver = StoreDriver(f.Storage.Driver)
	}
	setString(&c.mongoURI, f.Storage.MongoURI)
	setString(&c.mongoDatabase, f.Storage.MongoDatabase)
	setString(&c.databaseURL, f.Storage.DatabaseURL)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
