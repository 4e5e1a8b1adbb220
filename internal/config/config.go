package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/andy/gstbill/internal/domain"
)

type Config struct {
	// Supabase settings (remote store + auth)
	Supabase SupabaseConfig `yaml:"supabase"`

	// Gemini settings (AI line-item extraction)
	Gemini GeminiConfig `yaml:"gemini"`

	// Export settings
	Export ExportConfig `yaml:"export"`

	// Business profile printed on every invoice
	Business domain.BusinessDetails `yaml:"business"`
}

type SupabaseConfig struct {
	URL     string `yaml:"url" envconfig:"SUPABASE_URL"`
	AnonKey string `yaml:"anon_key" envconfig:"SUPABASE_ANON_KEY"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" envconfig:"GEMINI_API_KEY"`
	Model  string `yaml:"model" envconfig:"GEMINI_MODEL"`
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for generated invoices
}

// DefaultConfigPath returns ~/.config/gstbill/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "gstbill", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "gstbill", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	cfg := &Config{
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(homeDir, ".config", "gstbill", "invoices"),
		},
	}
	cfg.Business.FillDefaults()
	return cfg
}

// Load loads config from the given path, or returns defaults if the file
// doesn't exist. A .env file in the working directory and process env vars
// override the Supabase and Gemini credentials.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	if err := envconfig.Process("", &cfg.Supabase); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Gemini); err != nil {
		return nil, err
	}

	cfg.Business.FillDefaults()
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the export output directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Export.OutputDir, 0755)
}
