package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Site    SiteConfig    `mapstructure:"site"`
	Sitemap SitemapConfig `mapstructure:"sitemap"`
	Sports  SportsConfig  `mapstructure:"sports"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// AdminConfig holds the credentials for the single admin account.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SiteConfig holds site identity and generated-file layout configuration.
type SiteConfig struct {
	URL          string `mapstructure:"url"`           // canonical base URL embedded in generated files
	OutputRoot   string `mapstructure:"output_root"`   // directory holding index.html and sitemap.xml
	ArticlesDir  string `mapstructure:"articles_dir"`  // subdirectory of OutputRoot for article files
	TemplatesDir string `mapstructure:"templates_dir"` // optional on-disk template override
}

// SitemapConfig controls the scheduled sitemap rebuild.
type SitemapConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// SportsConfig holds settings for the external sports scraper.
type SportsConfig struct {
	ScraperCommand string        `mapstructure:"scraper_command"`
	ScraperArgs    []string      `mapstructure:"scraper_args"`
	CachePath      string        `mapstructure:"cache_path"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// SessionConfig holds session management configuration.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // hours
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("db.dsn", "kasrah:kasrah@tcp(localhost:3306)/kasrah?parseTime=true")
	viper.SetDefault("db.max_open_conns", 20)
	viper.SetDefault("site.url", "http://localhost:3000")
	viper.SetDefault("site.output_root", "public")
	viper.SetDefault("site.articles_dir", "articles")
	viper.SetDefault("sitemap.interval", 24*time.Hour)
	viper.SetDefault("sports.scraper_command", "python3")
	viper.SetDefault("sports.scraper_args", []string{"scrapers/yallakora_scraper.py"})
	viper.SetDefault("sports.cache_path", "data/sports_cache.db")
	viper.SetDefault("sports.cache_ttl", 30*time.Minute)
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/kasrah-cms/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("KASRAH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
