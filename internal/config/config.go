// Package config loads tool settings from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the commands and the server share.
type Config struct {
	// LibraryPath is the JSON file holding the scanned book list.
	LibraryPath string `yaml:"library_path"`
	// ExportDir receives exported CSV/Parquet files.
	ExportDir string `yaml:"export_dir"`

	Recognizer  RecognizerConfig `yaml:"recognizer"`
	GoogleBooks APIConfig        `yaml:"google_books"`
}

// RecognizerConfig selects and tunes the text-recognition engine.
type RecognizerConfig struct {
	// Engine is "tesseract", "gemini" or "ollama".
	Engine string `yaml:"engine"`
	// Languages are tesseract traineddata names tried in order.
	Languages []string `yaml:"languages"`
	// Model is the vision model name for gemini/ollama engines.
	Model string `yaml:"model"`
	// OllamaHost overrides the local Ollama endpoint.
	OllamaHost string `yaml:"ollama_host"`
}

// APIConfig configures the online catalog client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LibraryPath: "data/books.json",
		ExportDir:   "exports",
		Recognizer: RecognizerConfig{
			Engine:    "tesseract",
			Languages: []string{"chi_sim", "eng"},
		},
		GoogleBooks: APIConfig{
			BaseURL: "https://www.googleapis.com/books/v1",
		},
	}
}

// Load reads the config file at path over the defaults. A missing file
// just means defaults; env vars fill in secrets last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if cfg.GoogleBooks.APIKey == "" {
		cfg.GoogleBooks.APIKey = os.Getenv("GOOGLE_BOOKS_API_KEY")
	}
	if v := os.Getenv("ORC_BOOK_LIBRARY"); v != "" {
		cfg.LibraryPath = v
	}
	if v := os.Getenv("ORC_BOOK_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("ORC_BOOK_RECOGNIZER"); v != "" {
		cfg.Recognizer.Engine = v
	}
	return cfg, nil
}
