package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"certportal/certificate-portal-backend/internal/render"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	Database     DatabaseConfig     `json:"database"`
	Auth         AuthConfig         `json:"auth"`
	Assets       AssetsConfig       `json:"assets"`
	Certificates CertificatesConfig `json:"certificates"`
	Render       RenderConfig       `json:"render"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// AuthConfig carries the single-admin identity and token settings.
type AuthConfig struct {
	AdminUsername     string        `json:"admin_username"`
	AdminPassword     string        `json:"admin_password"`
	AdminPasswordHash string        `json:"admin_password_hash"`
	JWTSecret         string        `json:"jwt_secret"`
	TokenTTL          time.Duration `json:"token_ttl"`
}

// AssetsConfig locates the raster assets consumed by the render pipeline.
type AssetsConfig struct {
	// PhotoDir is where uploaded student photos are stored.
	PhotoDir string `json:"photo_dir"`
	// LogoRef is the institute logo used by the freeform strategy.
	LogoRef string `json:"logo_ref"`
	// TemplateRef is the template document used by the overlay strategy.
	TemplateRef string `json:"template_ref"`
	// HTTPTimeout bounds network-backed asset reads; a timeout degrades to
	// the missing-asset path.
	HTTPTimeout time.Duration `json:"http_timeout"`
}

// CertificatesConfig carries record-store policies.
type CertificatesConfig struct {
	// SerialNoUnique enables the strict serial-number uniqueness policy.
	SerialNoUnique bool `json:"serial_no_unique"`
}

// RenderConfig selects and tunes the rendering strategy.
type RenderConfig struct {
	// Strategy is "freeform" or "overlay".
	Strategy string `json:"strategy"`
	// FooterCaption is the free-form overlay footer line.
	FooterCaption string `json:"footer_caption"`
	// Overlay coordinates are bound to the configured template artwork.
	Overlay render.OverlayLayout `json:"overlay"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "certportal",
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			AdminUsername: "admin",
			TokenTTL:      12 * time.Hour,
		},
		Assets: AssetsConfig{
			PhotoDir:    "photos",
			LogoRef:     "logos/institute_logo.png",
			TemplateRef: "templates/certificate.pdf",
			HTTPTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			Strategy:      string(render.StrategyFreeform),
			FooterCaption: "Default Admin Text",
			Overlay:       render.DefaultOverlayLayout(),
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if user := os.Getenv("ADMIN_USERNAME"); user != "" {
		config.Auth.AdminUsername = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		config.Auth.AdminPassword = pass
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		config.Auth.AdminPasswordHash = hash
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if strategy := os.Getenv("RENDER_STRATEGY"); strategy != "" {
		config.Render.Strategy = strategy
	}
	if logo := os.Getenv("ASSETS_LOGO_REF"); logo != "" {
		config.Assets.LogoRef = logo
	}
	if template := os.Getenv("ASSETS_TEMPLATE_REF"); template != "" {
		config.Assets.TemplateRef = template
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StrategyValue returns the configured render strategy, defaulting to
// freeform.
func (c *RenderConfig) StrategyValue() render.Strategy {
	if c.Strategy == string(render.StrategyOverlay) {
		return render.StrategyOverlay
	}
	return render.StrategyFreeform
}
