package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, loaded from a YAML file.
type Config struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	UploadDir    string `yaml:"upload_dir"`
	ConvertedDir string `yaml:"converted_dir"`

	MaxUploadMb int64 `yaml:"max_upload_mb"`

	// Paths to the external conversion binaries. Empty values resolve
	// from PATH.
	FFmpegPath    string `yaml:"ffmpeg_path"`
	PDFEnginePath string `yaml:"pdf_engine_path"`

	Retention Retention `yaml:"retention"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// Retention controls the age-based sweep of the upload and converted
// directories.
type Retention struct {
	SweepInterval time.Duration `yaml:"sweep_interval"`
	MaxAge        time.Duration `yaml:"max_age"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

// MustLoad reads and validates the configuration file, exiting the process
// on any problem. An empty path yields the defaults.
func MustLoad(path string) *Config {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("config: cannot read file %q: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("config: cannot unmarshal yaml: %v", err)
	}

	if cfg.Retention.SweepInterval < 0 || cfg.Retention.MaxAge < 0 {
		log.Fatalf("config: retention durations must not be negative")
	}

	cfg.fillDefaults()
	return &cfg
}

func (c *Config) fillDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.ConvertedDir == "" {
		c.ConvertedDir = "converted"
	}
	if c.MaxUploadMb <= 0 {
		c.MaxUploadMb = 512
	}
	if c.Retention.SweepInterval == 0 {
		c.Retention.SweepInterval = time.Hour
	}
	if c.Retention.MaxAge == 0 {
		c.Retention.MaxAge = 24 * time.Hour
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}
}
