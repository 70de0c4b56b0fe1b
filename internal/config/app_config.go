package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/repokit/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	TOC  TOCConfiguration  `mapstructure:"toc"`
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TOCConfiguration defines defaults for the toc command.
type TOCConfiguration struct {
	File      string `mapstructure:"file"`
	Format    string `mapstructure:"format"`
	Parser    string `mapstructure:"parser"`
	Summary   string `mapstructure:"summary"`
	Clipboard *bool  `mapstructure:"clipboard"`
}

// TreeConfiguration defines defaults for the tree command.
type TreeConfiguration struct {
	Format           string   `mapstructure:"format"`
	Ignore           []string `mapstructure:"ignore"`
	UseDefaultIgnore *bool    `mapstructure:"use_default_ignore"`
	IgnoreFile       string   `mapstructure:"ignore_file"`
	Summary          *bool    `mapstructure:"summary"`
	Clipboard        *bool    `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from the global and local files.
// Values from the local file override global ones field by field.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if merged.Tree.IgnoreFile != "" && !filepath.IsAbs(merged.Tree.IgnoreFile) {
		merged.Tree.IgnoreFile = filepath.Join(workingDirectory, merged.Tree.IgnoreFile)
	}
	merged.Tree.Ignore = utils.DeduplicatePatterns(merged.Tree.Ignore)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

// loadConfigurationFromPath returns an empty configuration for a missing file unless required is set.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.TOC = result.TOC.merge(override.TOC)
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TOCConfiguration) merge(override TOCConfiguration) TOCConfiguration {
	result := config
	if override.File != "" {
		result.File = override.File
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Parser != "" {
		result.Parser = override.Parser
	}
	if override.Summary != "" {
		result.Summary = override.Summary
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, utils.DeduplicatePatterns(override.Ignore)...)
	}
	if override.UseDefaultIgnore != nil {
		result.UseDefaultIgnore = cloneBool(override.UseDefaultIgnore)
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
