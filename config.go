package omlflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/omlflow/service/meta"
)

// MemoryRegistryURL selects the in-memory registry
const MemoryRegistryURL = "memory://"

// Config is a serialisable representation of the service configuration. It can
// be populated from YAML or JSON; LoadConfig expands ${env.KEY} expressions.
type Config struct {
	Registry RegistryConfig `json:"registry" yaml:"registry"`
}

// RegistryConfig configures the registry connection
type RegistryConfig struct {
	// URL is the registry API root, or memory:// for an in-memory registry
	URL    string `json:"url" yaml:"url"`
	APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	// APIKeySecretURL locates an encrypted API key, revealed with APIKeySecretKey
	APIKeySecretURL string `json:"apiKeySecretURL,omitempty" yaml:"apiKeySecretURL,omitempty"`
	APIKeySecretKey string `json:"apiKeySecretKey,omitempty" yaml:"apiKeySecretKey,omitempty"`
	// VersionPackage, when set, looks flows up by <package>_<pinned version> instead of the external version
	VersionPackage string `json:"versionPackage,omitempty" yaml:"versionPackage,omitempty"`
	TimeoutMs      int    `json:"timeoutMs" yaml:"timeoutMs"`
}

// DefaultConfig returns a Config targeting the public registry
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:       "https://www.openml.org/api/v1/xml/",
			TimeoutMs: 60000,
		},
	}
}

// IsMemory returns true when the in-memory registry is configured
func (c *RegistryConfig) IsMemory() bool {
	return c.URL == MemoryRegistryURL
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []string
	if c.Registry.URL == "" {
		errs = append(errs, "registry.url was empty")
	} else if !c.Registry.IsMemory() && !strings.HasPrefix(c.Registry.URL, "http://") && !strings.HasPrefix(c.Registry.URL, "https://") {
		errs = append(errs, fmt.Sprintf("registry.url %q should be http(s) or %v", c.Registry.URL, MemoryRegistryURL))
	}
	if c.Registry.TimeoutMs <= 0 {
		errs = append(errs, "registry.timeoutMs must be > 0")
	}
	if c.Registry.APIKey != "" && c.Registry.APIKeySecretURL != "" {
		errs = append(errs, "registry.apiKey and registry.apiKeySecretURL are mutually exclusive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %v", strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfig loads a YAML config over DefaultConfig and validates it
func LoadConfig(ctx context.Context, metaService *meta.Service, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := metaService.Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
