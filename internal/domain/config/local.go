package config

// LocalConfig represents the per-user treasury defaults kept in .treasury/config.local.json
type LocalConfig struct {
	Mode   string `json:"mode"`
	Preset string `json:"preset,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyMode   ConfigKey = "mode"
	ConfigKeyPreset ConfigKey = "preset"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Mode:   "simple",
		Preset: "",
	}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyMode,
		ConfigKeyPreset,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "m" && validKey == ConfigKeyMode) {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "m" -> "mode")
func NormalizeConfigKey(key string) ConfigKey {
	if key == "m" {
		return ConfigKeyMode
	}
	return ConfigKey(key)
}
