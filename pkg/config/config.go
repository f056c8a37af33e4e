package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tariff struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"tariff"`

	Documents struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"documents"`

	Index struct {
		Backend    string `yaml:"backend"` // "disk" or "pgvector"
		Path       string `yaml:"path"`
		ConnString string `yaml:"conn_string"`
		TableName  string `yaml:"table_name"`
		VectorDim  int    `yaml:"vector_dim"`
	} `yaml:"index"`

	Embedder struct {
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"embedder"`

	Memory struct {
		Dir string `yaml:"dir"`
	} `yaml:"memory"`

	Ingest struct {
		ChunkSize      int     `yaml:"chunk_size"`
		ChunkOverlap   int     `yaml:"chunk_overlap"`
		MinChunkLength int     `yaml:"min_chunk_length"`
		RateLimit      float64 `yaml:"rate_limit"`
	} `yaml:"ingest"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/htsagent/config.yaml"),
			"/etc/htsagent/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Tariff.CSVPath == "" {
		config.Tariff.CSVPath = "data/htsdata.csv"
	}

	if config.Documents.DBPath == "" {
		config.Documents.DBPath = "data/hts_data.db"
	}

	if config.Index.Backend == "" {
		config.Index.Backend = "disk"
	}
	if config.Index.Path == "" {
		config.Index.Path = "data/vectorstore.idx"
	}
	if config.Index.TableName == "" {
		config.Index.TableName = "passages"
	}
	if config.Index.VectorDim == 0 {
		config.Index.VectorDim = 768
	}

	if config.Embedder.BaseURL == "" {
		config.Embedder.BaseURL = "http://localhost:11434"
	}
	if config.Embedder.Model == "" {
		config.Embedder.Model = "nomic-embed-text:latest"
	}
	if config.Embedder.TimeoutSeconds == 0 {
		config.Embedder.TimeoutSeconds = 5
	}

	if config.Memory.Dir == "" {
		config.Memory.Dir = "."
	}

	if config.Ingest.ChunkSize == 0 {
		config.Ingest.ChunkSize = 1000
	}
	if config.Ingest.ChunkOverlap == 0 {
		config.Ingest.ChunkOverlap = 100
	}
	if config.Ingest.MinChunkLength == 0 {
		config.Ingest.MinChunkLength = 100
	}
	if config.Ingest.RateLimit == 0 {
		config.Ingest.RateLimit = 4.0
	}

	if config.Export.Dir == "" {
		config.Export.Dir = "."
	}
}

func mergeWithEnv(config *Config) {
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.Embedder.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Index.ConnString = dbURL
	}
	if csvPath := os.Getenv("HTS_CSV_PATH"); csvPath != "" {
		config.Tariff.CSVPath = csvPath
	}
	if memDir := os.Getenv("HTS_MEMORY_DIR"); memDir != "" {
		config.Memory.Dir = memDir
	}
}
