package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	JSON     bool           `mapstructure:"json"`
	Config   string         `mapstructure:"config"`
	Scan     ScanConfig     `mapstructure:"scan" validate:"required"`
	Registry RegistryConfig `mapstructure:"registry" validate:"required"`
}

// ScanConfig holds ecosystem scan settings.
type ScanConfig struct {
	// Root is the ecosystem root directory scanned for projects.
	Root string `mapstructure:"root" validate:"required"`
	// MapFile is where the ecosystem map document is written when requested.
	MapFile string `mapstructure:"mapFile" validate:"required"`
	// GitTimeoutSeconds bounds each git subprocess invocation.
	GitTimeoutSeconds int `mapstructure:"gitTimeoutSeconds" validate:"omitempty,min=1,max=120"`
}

// RegistryConfig holds component registry settings.
type RegistryConfig struct {
	// Path is the root directory of the component registry.
	Path string `mapstructure:"path" validate:"required"`
}
