package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gleaner-dev/gleaner/models"
	"github.com/gleaner-dev/gleaner/types"
)

const (
	configName = ".gleaner"
	envPrefix  = "GLEANER"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. Missing files are fine.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the
	// config file, so GLEANER_SCAN_ROOT and friends take effect.
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("scan.root", ".")
	viper.SetDefault("scan.mapFile", "ECOSYSTEM_MAP.md")
	viper.SetDefault("scan.gitTimeoutSeconds", 10)
	viper.SetDefault("registry.path", "components")

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// A config file may exist but omit these nested keys.
	if GlobalAppConfig.Scan.Root == "" {
		GlobalAppConfig.Scan.Root = viper.GetString("scan.root")
	}
	if GlobalAppConfig.Scan.MapFile == "" {
		GlobalAppConfig.Scan.MapFile = viper.GetString("scan.mapFile")
	}
	if GlobalAppConfig.Registry.Path == "" {
		GlobalAppConfig.Registry.Path = viper.GetString("registry.path")
	}

	if err := models.ValidateStruct(GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// commandLogger builds the slog logger commands hand to the internal
// packages. Verbose runs log debug and up to stderr; otherwise only
// warnings and errors surface.
func commandLogger() *slog.Logger {
	level := slog.LevelWarn
	if isVerbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
