package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"session"`

	Provider struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURL  string `yaml:"redirect_url"`
		AuthURL      string `yaml:"auth_url"`
		TokenURL     string `yaml:"token_url"`
		UserinfoURL  string `yaml:"userinfo_url"`
	} `yaml:"provider"`

	Storage struct {
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize       int64 `yaml:"max_size"`       // Max file size in bytes
		MaxFiles      int   `yaml:"max_files"`      // Max attachments per listing
		ThumbnailSize int   `yaml:"thumbnail_size"` // Thumbnail edge in pixels
		ImageQuality  int   `yaml:"image_quality"`  // JPEG quality (1-100)
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or environment variables when DATABASE_URL is
// set (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Session.Secret = os.Getenv("SESSION_SECRET")
	cfg.Provider.ClientID = os.Getenv("PROVIDER_CLIENT_ID")
	cfg.Provider.ClientSecret = os.Getenv("PROVIDER_CLIENT_SECRET")
	cfg.Provider.RedirectURL = os.Getenv("PROVIDER_REDIRECT_URL")
	cfg.Provider.AuthURL = os.Getenv("PROVIDER_AUTH_URL")
	cfg.Provider.TokenURL = os.Getenv("PROVIDER_TOKEN_URL")
	cfg.Provider.UserinfoURL = os.Getenv("PROVIDER_USERINFO_URL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 60
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 5
	}
	if cfg.Upload.ThumbnailSize == 0 {
		cfg.Upload.ThumbnailSize = 150
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 85
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
