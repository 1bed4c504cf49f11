package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	// devBaseURL is the backend address interactive development builds
	// talk to.
	devBaseURL = "http://localhost:10000/api"

	// prodBaseURL is the deployed backend. Release builds default to it.
	prodBaseURL = "https://hr-backend-9ci3.onrender.com/api"

	fileName = "config.yaml"
)

// File is the optional per-user configuration at ~/.hrctl/config.yaml.
type File struct {
	APIURL string `yaml:"api_url"`
	Debug  bool   `yaml:"debug"`
}

// Load reads the configuration file from baseDir. A missing file is not
// an error; it loads as the zero value.
func Load(baseDir string) (*File, error) {
	path := filepath.Join(baseDir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Debug().Str("path", path).Msg("config file loaded")

	return &f, nil
}

// ResolveBaseURL picks the backend endpoint once per client lifetime:
// an explicit override (flag or environment) wins, then the config file,
// then the build-mode default.
func ResolveBaseURL(override string, f *File, version string) string {
	if override != "" {
		return override
	}
	if f != nil && f.APIURL != "" {
		return f.APIURL
	}
	if version == "dev" {
		return devBaseURL
	}
	return prodBaseURL
}
