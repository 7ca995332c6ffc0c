package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultWorkers    = 4
	defaultMaxRetries = 3
	defaultCacheName  = ".reposync-cache.json"
)

// Settings is the top-level configuration for reposync.
type Settings struct {
	GitHub       GitHubSettings `yaml:"github"`
	BaseFolder   string         `yaml:"base_folder"`
	Protocol     Protocol       `yaml:"protocol"`
	Workers      int            `yaml:"workers"`
	MaxRetries   int            `yaml:"max_retries"`
	CacheFile    string         `yaml:"cache_file"`
	SkipArchived bool           `yaml:"skip_archived"`
	SkipForks    bool           `yaml:"skip_forks"`
}

// GitHubSettings describes the hosting API endpoint and credentials.
type GitHubSettings struct {
	Token      string `yaml:"token"`        // Inline, ${ENV_VAR}, or file path
	APIBaseURL string `yaml:"api_base_url"` // Override for GitHub Enterprise
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving token file paths, applying defaults, and validating
// the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".reposync.yaml",
		".reposync.yml",
		"reposync.yaml",
		"reposync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) applyDefaults() {
	if s.GitHub.APIBaseURL == "" {
		s.GitHub.APIBaseURL = defaultAPIBaseURL
	}
	if s.Protocol == "" {
		s.Protocol = ProtocolHTTPS
	}
	if s.Workers <= 0 {
		s.Workers = defaultWorkers
	}
	if s.MaxRetries <= 0 {
		s.MaxRetries = defaultMaxRetries
	}
	if s.CacheFile == "" && s.BaseFolder != "" {
		s.CacheFile = filepath.Join(s.BaseFolder, defaultCacheName)
	}
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values. All failures are
// ConfigErrors and abort the run before any repository is touched.
func (s *Settings) validate() error {
	if s.GitHub.Token == "" {
		return &ConfigError{
			Field:  "github.token",
			Reason: "token is required (set inline, via ${ENV_VAR}, or as file path)",
		}
	}
	for _, r := range s.GitHub.Token {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return &ConfigError{Field: "github.token", Reason: "token contains whitespace or control characters"}
		}
	}

	if s.BaseFolder == "" {
		return &ConfigError{Field: "base_folder", Reason: "base folder is required"}
	}
	if !filepath.IsAbs(s.BaseFolder) {
		return &ConfigError{Field: "base_folder", Reason: "base folder must be an absolute path"}
	}

	if s.Protocol != ProtocolSSH && s.Protocol != ProtocolHTTPS {
		return &ConfigError{Field: "protocol", Reason: "protocol must be ssh or https"}
	}

	return nil
}
