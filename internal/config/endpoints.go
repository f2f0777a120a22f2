package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EndpointProfile names one Binance futures REST environment.
type EndpointProfile struct {
	BaseURL string `yaml:"base_url"`
}

type Endpoints struct {
	Profiles map[string]EndpointProfile `yaml:"profiles"`
}

// DefaultEndpoints returns the built-in profile set.
func DefaultEndpoints() Endpoints {
	return Endpoints{Profiles: map[string]EndpointProfile{
		"testnet": {BaseURL: "https://testnet.binancefuture.com"},
		"mainnet": {BaseURL: "https://fapi.binance.com"},
	}}
}

// LoadEndpoints merges the YAML file at path over the built-in profiles.
// An empty path returns the built-ins unchanged.
func LoadEndpoints(path string) (Endpoints, error) {
	eps := DefaultEndpoints()
	if path == "" {
		return eps, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Endpoints{}, fmt.Errorf("read endpoints: %w", err)
	}

	var file Endpoints
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Endpoints{}, fmt.Errorf("parse endpoints: %w", err)
	}

	for name, p := range file.Profiles {
		eps.Profiles[name] = p
	}
	return eps, nil
}

// BaseURL looks up the REST base URL of a named profile.
func (e Endpoints) BaseURL(profile string) (string, error) {
	p, ok := e.Profiles[profile]
	if !ok || p.BaseURL == "" {
		return "", fmt.Errorf("unknown endpoint profile %q", profile)
	}
	return p.BaseURL, nil
}
