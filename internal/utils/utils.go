// Package utils contains general helper functions used across the repokit tool.
package utils

import "strings"

// Shared file and directory names used across the project.
const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".repokit.yaml"
	// GlobalConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".repokit"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// DefaultReadmeFileName is the Markdown document scanned by the toc command.
	DefaultReadmeFileName = "README.md"
	// DirectorySuffix marks directory names in ignore lists and tree output.
	DirectorySuffix = "/"
)

// DefaultIgnoredNames lists the directory entries the tree command lists but never descends into.
func DefaultIgnoredNames() []string {
	return []string{".git/", "node_modules/", ".env", "lib/", "broadcast/", "out/", "cache/"}
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizeIgnoredName trims whitespace and converts backslashes so Windows style entries
// such as `build\` match the same way as `build/`.
func NormalizeIgnoredName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "\\", DirectorySuffix)
}
