package core

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sliink/chaincore/internal/model"
)

// ConfigDecoder turns the raw bytes of a configuration document into a value tree
type ConfigDecoder func(data []byte) (map[string]interface{}, error)

// JSONDecoder is the default configuration decoder
func JSONDecoder(data []byte) (map[string]interface{}, error) {
	var config map[string]interface{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]interface{})
	}
	return config, nil
}

// ConfigManager handles loading, storing, and accessing configuration documents
type ConfigManager struct {
	config     map[string]interface{}
	configFile string
	decoder    ConfigDecoder
	mutex      sync.RWMutex
	BaseComponent
}

// NewConfigManager creates a new configuration manager. A nil decoder selects JSONDecoder.
func NewConfigManager(decoder ConfigDecoder) *ConfigManager {
	if decoder == nil {
		decoder = JSONDecoder
	}
	return &ConfigManager{
		config:        make(map[string]interface{}),
		decoder:       decoder,
		BaseComponent: NewBaseComponent("config_manager"),
	}
}

// Shutdown drops the loaded document
func (m *ConfigManager) Shutdown() bool {
	return m.ShutdownWith(func() {
		m.mutex.Lock()
		m.config = make(map[string]interface{})
		m.configFile = ""
		m.mutex.Unlock()
	})
}

// LoadConfig loads configuration from a file
func (m *ConfigManager) LoadConfig(path string) (bool, error) {
	err := m.Guard(func() error {
		if strings.TrimSpace(path) == "" {
			return model.InvalidInput(m.Name(), "config path is empty")
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return model.InvalidInput(m.Name(), "config path %q is not an existing file", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return model.OperationFailed(m.Name(), err, "error reading config file")
		}
		config, err := m.decoder(data)
		if err != nil {
			return model.OperationFailed(m.Name(), err, "error parsing config file")
		}

		m.mutex.Lock()
		m.config = config
		m.configFile = path
		m.mutex.Unlock()
		return nil
	})
	return err == nil, err
}

// SaveConfig saves the current configuration as JSON. An empty path reuses the loaded file.
func (m *ConfigManager) SaveConfig(path string) error {
	return m.Guard(func() error {
		m.mutex.RLock()
		defer m.mutex.RUnlock()

		if path == "" {
			path = m.configFile
		}
		if path == "" {
			return model.InvalidInput(m.Name(), "no config file specified")
		}

		data, err := json.MarshalIndent(m.config, "", "  ")
		if err != nil {
			return model.OperationFailed(m.Name(), err, "error encoding config")
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return model.OperationFailed(m.Name(), err, "error writing config file")
		}
		return nil
	})
}

// ConfigFile returns the path of the last loaded document
func (m *ConfigManager) ConfigFile() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.configFile
}

// Value retrieves a configuration value by dotted path
func (m *ConfigManager) Value(path string, defaultValue interface{}) (interface{}, error) {
	var result interface{}
	err := m.Guard(func() error {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		result = lookup(m.config, path, defaultValue)
		return nil
	})
	return result, err
}

// HasKey reports whether a dotted path resolves to a value
func (m *ConfigManager) HasKey(path string) (bool, error) {
	var found bool
	err := m.Guard(func() error {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, found = find(m.config, path)
		return nil
	})
	return found, err
}

// Keys returns the sorted top-level keys of the loaded document
func (m *ConfigManager) Keys() ([]string, error) {
	var keys []string
	err := m.Guard(func() error {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		keys = make([]string, 0, len(m.config))
		for k := range m.config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil
	})
	return keys, err
}

// SetValue sets a configuration value by dotted path, creating intermediate maps
func (m *ConfigManager) SetValue(path string, value interface{}) error {
	return m.Guard(func() error {
		if path == "" {
			return model.InvalidInput(m.Name(), "config key is empty")
		}

		m.mutex.Lock()
		defer m.mutex.Unlock()

		parts := strings.Split(path, ".")
		current := m.config
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = value
		return nil
	})
}

// RemoveKey deletes the value at a dotted path and reports whether it was present
func (m *ConfigManager) RemoveKey(path string) (bool, error) {
	var removed bool
	err := m.Guard(func() error {
		if path == "" {
			return model.InvalidInput(m.Name(), "config key is empty")
		}

		m.mutex.Lock()
		defer m.mutex.Unlock()

		parts := strings.Split(path, ".")
		parent, ok := find(m.config, strings.Join(parts[:len(parts)-1], "."))
		if !ok {
			return nil
		}
		node, ok := parent.(map[string]interface{})
		if !ok {
			return nil
		}
		key := parts[len(parts)-1]
		if _, removed = node[key]; removed {
			delete(node, key)
		}
		return nil
	})
	return removed, err
}

// Clear drops every value. The loaded file path is kept so SaveConfig can still write to it.
func (m *ConfigManager) Clear() error {
	return m.Guard(func() error {
		m.mutex.Lock()
		m.config = make(map[string]interface{})
		m.mutex.Unlock()
		return nil
	})
}

// RegistryConfig maps the loaded document onto a registry configuration.
// Keys read: network.id, api.endpoint, api.key, debug, max_retries, timeout
// (seconds or a duration string) and extensions.
func (m *ConfigManager) RegistryConfig() (model.Config, error) {
	var cfg model.Config
	err := m.Guard(func() error {
		m.mutex.RLock()
		defer m.mutex.RUnlock()

		cfg.NetworkID, _ = lookup(m.config, "network.id", "").(string)
		cfg.APIEndpoint, _ = lookup(m.config, "api.endpoint", "").(string)
		cfg.APIKey, _ = lookup(m.config, "api.key", "").(string)
		cfg.Debug, _ = lookup(m.config, "debug", false).(bool)
		if retries, ok := lookup(m.config, "max_retries", nil).(float64); ok {
			cfg.MaxRetries = int(retries)
		}
		switch timeout := lookup(m.config, "timeout", nil).(type) {
		case float64:
			cfg.Timeout = time.Duration(timeout * float64(time.Second))
		case string:
			d, err := time.ParseDuration(timeout)
			if err != nil {
				return model.InvalidInput(m.Name(), "timeout %q: %v", timeout, err)
			}
			cfg.Timeout = d
		}
		if ext, ok := lookup(m.config, "extensions", nil).(map[string]interface{}); ok {
			cfg.Extensions = ext
		}
		return nil
	})
	return cfg.Clone(), err
}

func lookup(config map[string]interface{}, path string, defaultValue interface{}) interface{} {
	if v, ok := find(config, path); ok {
		return v
	}
	return defaultValue
}

func find(config map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return config, true
	}

	current := config
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		current, ok = v.(map[string]interface{})
		if !ok {
			return nil, false
		}
	}
	return nil, false
}
