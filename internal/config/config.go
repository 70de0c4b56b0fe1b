// Package config loads repokit configuration files and ignore lists.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/repokit/internal/utils"
)

const (
	commentPrefix             = "#"
	warningCloseFileFormat    = "Warning: failed to close %s: %v\n"
	errorLoadIgnoreFileFormat = "loading ignore file %s: %w"
)

// LoadIgnoreFile reads one ignored entry per line. Blank lines and lines starting with '#'
// are skipped. A missing file yields no entries.
//
// #nosec G304
func LoadIgnoreFile(ignoreFilePath string) ([]string, error) {
	if ignoreFilePath == "" {
		return nil, nil
	}
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseFileFormat, ignoreFilePath, closeError)
		}
	}()

	var entries []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		entries = append(entries, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ignoreFilePath, scanError)
	}
	return entries, nil
}

// IgnoreSources lists every origin of ignored entries for the tree command.
type IgnoreSources struct {
	UseDefaults bool
	Configured  []string
	FileEntries []string
	Flags       []string
}

// ResolveIgnoredNames merges ignore sources into the list handed to the tree walker.
// Built-in defaults are kept verbatim. Other entries only ever match directories, so a
// trailing slash is appended when missing.
func ResolveIgnoredNames(sources IgnoreSources) []string {
	var combined []string
	if sources.UseDefaults {
		combined = append(combined, utils.DefaultIgnoredNames()...)
	}
	for _, group := range [][]string{sources.Configured, sources.FileEntries, sources.Flags} {
		for _, entry := range group {
			normalized := utils.NormalizeIgnoredName(entry)
			if normalized == "" || normalized == utils.DirectorySuffix {
				continue
			}
			if !strings.HasSuffix(normalized, utils.DirectorySuffix) {
				normalized += utils.DirectorySuffix
			}
			combined = append(combined, normalized)
		}
	}
	return utils.DeduplicatePatterns(combined)
}
