// Package layout renders a directory as an indented tree diagram.
//
// Children are listed in byte order. Every entry named in Options.Ignored is still listed
// but never descended into; the comparison is an exact match against the entry name, with
// a trailing slash appended for directories.
package layout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/repokit/internal/utils"
)

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "

	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorRootNotDirectory    = "%s is not a directory"
)

// Options configures a walk.
type Options struct {
	Root    string
	Ignored []string
	Logger  *zap.Logger
}

// Line is one row of the tree diagram.
type Line struct {
	Path      string
	Name      string
	Prefix    string
	Connector string
	Depth     int
	IsDir     bool
	Skipped   bool
}

// String renders the line without a trailing newline.
func (line Line) String() string {
	return line.Prefix + line.Connector + line.Name
}

type pendingLine struct {
	line        Line
	childPrefix string
}

// Walk visits the root line followed by every descendant line in print order.
// Traversal uses an explicit stack instead of recursion.
func Walk(ctx context.Context, options Options, visit func(Line) error) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.Root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return statError
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirectory, absoluteRoot)
	}

	ignored := make(map[string]struct{}, len(options.Ignored))
	for _, name := range options.Ignored {
		ignored[name] = struct{}{}
	}

	stack := []pendingLine{{
		line: Line{
			Path:  absoluteRoot,
			Name:  rootDisplayName(absoluteRoot),
			IsDir: true,
		},
	}}

	for len(stack) > 0 {
		if contextError := ctx.Err(); contextError != nil {
			return contextError
		}
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visitError := visit(current.line); visitError != nil {
			return visitError
		}
		if !current.line.IsDir || current.line.Skipped {
			continue
		}

		children, listError := listChildren(current.line, current.childPrefix, ignored)
		if listError != nil {
			return listError
		}
		logger.Debug("listed directory", zap.String("path", current.line.Path), zap.Int("entries", len(children)))
		for index := len(children) - 1; index >= 0; index-- {
			stack = append(stack, children[index])
		}
	}
	return nil
}

func listChildren(parent Line, prefix string, ignored map[string]struct{}) ([]pendingLine, error) {
	directoryEntries, readError := os.ReadDir(parent.Path)
	if readError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, parent.Path, readError)
	}
	names := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		names = append(names, directoryEntry.Name())
	}
	sort.Strings(names)

	children := make([]pendingLine, 0, len(names))
	for index, name := range names {
		childPath := filepath.Join(parent.Path, name)
		isDirectory := isDirectory(childPath)

		displayName := name
		if isDirectory {
			displayName += utils.DirectorySuffix
		}

		connector, childPrefix := branchConnector, prefix+branchPadding
		if index == len(names)-1 {
			connector, childPrefix = lastConnector, prefix+lastPadding
		}

		_, isIgnored := ignored[displayName]
		children = append(children, pendingLine{
			line: Line{
				Path:      childPath,
				Name:      displayName,
				Prefix:    prefix,
				Connector: connector,
				Depth:     parent.Depth + 1,
				IsDir:     isDirectory,
				Skipped:   isDirectory && isIgnored,
			},
			childPrefix: childPrefix,
		})
	}
	return children, nil
}

// isDirectory follows symbolic links; entries that cannot be stat'ed count as files.
func isDirectory(path string) bool {
	info, statError := os.Stat(path)
	return statError == nil && info.IsDir()
}

func rootDisplayName(absoluteRoot string) string {
	baseName := filepath.Base(absoluteRoot)
	if baseName == string(filepath.Separator) {
		return utils.DirectorySuffix
	}
	return baseName + utils.DirectorySuffix
}
