package model

import (
	"strings"
	"time"
)

// Config is the registry-wide configuration snapshot
type Config struct {
	NetworkID   string         `json:"network_id"`
	APIEndpoint string         `json:"api_endpoint"`
	APIKey      string         `json:"api_key,omitempty"`
	Debug       bool           `json:"debug"`
	MaxRetries  int            `json:"max_retries"`
	Timeout     time.Duration  `json:"timeout"`
	Extensions  map[string]any `json:"extensions,omitempty"`
}

// Validate checks the fields required before a registry can become ready
func (c Config) Validate() error {
	if strings.TrimSpace(c.NetworkID) == "" {
		return InvalidConfiguration("network id is empty")
	}
	if strings.TrimSpace(c.APIEndpoint) == "" {
		return InvalidConfiguration("api endpoint is empty")
	}
	if c.MaxRetries < 0 {
		return InvalidConfiguration("max retries is negative")
	}
	if c.Timeout < 0 {
		return InvalidConfiguration("timeout is negative")
	}
	return nil
}

// Clone returns a copy that shares no mutable state with c
func (c Config) Clone() Config {
	out := c
	if c.Extensions != nil {
		out.Extensions = make(map[string]any, len(c.Extensions))
		for k, v := range c.Extensions {
			out.Extensions[k] = v
		}
	}
	return out
}
