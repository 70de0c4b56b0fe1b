// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repokit/internal/config"
	"github.com/temirov/repokit/internal/layout"
	"github.com/temirov/repokit/internal/output"
	"github.com/temirov/repokit/internal/services/clipboard"
	"github.com/temirov/repokit/internal/services/stream"
	"github.com/temirov/repokit/internal/toc"
	"github.com/temirov/repokit/internal/types"
	"github.com/temirov/repokit/internal/utils"
)

const (
	configFlagName          = "config"
	verboseFlagName         = "verbose"
	versionFlagName         = "version"
	formatFlagName          = "format"
	parserFlagName          = "parser"
	summaryFlagName         = "summary"
	copyFlagName            = "copy"
	exclusionFlagName       = "e"
	ignoreFileFlagName      = "ignore-file"
	noDefaultIgnoreFlagName = "no-default-ignore"
	globalFlagName          = "global"
	forceFlagName           = "force"

	defaultPath          = "."
	rootUse              = "repokit"
	versionTemplate      = "repokit version: %s\n"
	rootShortDescription = "repokit command line interface"
	rootLongDescription  = `repokit generates repository documentation fragments.
It renders a Markdown table of contents and draws directory layout diagrams.
Use --config to point at a configuration file and --version to print the application version.`

	tocUse              = types.CommandTOC + " [file]"
	tocAlias            = "c"
	tocShortDescription = "generate a table of contents (" + tocAlias + ")"
	// tocLongDescription provides detailed help for the toc command.
	tocLongDescription = `Render the ## to ###### headings of a Markdown file as a nested HTML list
wrapped in a <details> block. The file defaults to README.md in the working directory.`
	// tocUsageExample demonstrates toc command usage.
	tocUsageExample = `  # Print the table of contents for README.md
  repokit toc

  # Parse CONTRIBUTING.md as Markdown, skipping fenced code, and copy the result
  repokit toc --parser markdown --copy CONTRIBUTING.md`

	treeUse              = types.CommandTree + " [paths...]"
	treeAlias            = "t"
	treeShortDescription = "display directory layout (" + treeAlias + ")"
	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Draw an indented diagram of one or more directories.
Directories such as .git/, node_modules/ and cache/ are listed but not expanded.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Draw the working directory
  repokit tree

  # Also collapse vendor/ and print JSON
  repokit tree -e vendor --format json ./services`

	initUse              = types.CommandInit
	initShortDescription = "write a default configuration file"

	configFlagDescription          = "configuration file to use instead of " + utils.ConfigFileName
	verboseFlagDescription         = "log debug messages"
	versionFlagDescription         = "display application version"
	formatFlagDescription          = "output format"
	parserFlagDescription          = "heading parser: lines or markdown"
	tocSummaryFlagDescription      = "label of the <summary> element"
	treeSummaryFlagDescription     = "print directory and file counts"
	copyFlagDescription            = "copy output to the clipboard"
	exclusionFlagDescription       = "collapse directories with this name"
	ignoreFileFlagDescription      = "file listing additional names to collapse"
	noDefaultIgnoreFlagDescription = "expand .git/, node_modules/ and the other built-in names"
	globalFlagDescription          = "write the configuration into the home directory"
	forceFlagDescription           = "overwrite an existing configuration file"

	invalidValueFormat          = "invalid %s value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorTreeFormat             = "tree %s: %w"
	configurationWrittenFormat  = "configuration written to %s\n"
	warningClipboardMessage     = "failed to copy output to clipboard"
)

// application carries the collaborators shared by every subcommand.
type application struct {
	logger *zap.Logger
	copier clipboard.Copier
}

// Execute runs the repokit application.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCommand := createRootCommand(&application{logger: logger, copier: clipboard.NewService()})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	if app.logger == nil {
		app.logger = zap.NewNop()
	}
	var showVersion bool
	var verbose bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !verbose {
				return nil
			}
			verboseLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			app.logger = verboseLogger
			return nil
		},
	}
	rootCommand.PersistentFlags().String(configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createTOCCommand(app),
		createTreeCommand(app),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// loadConfiguration reads configuration honoring the persistent --config flag.
func loadConfiguration(command *cobra.Command) (config.ApplicationConfiguration, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	explicitPath, _ := command.Flags().GetString(configFlagName)
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitPath,
	})
}

// pickString returns the flag value when it was set explicitly, then the configured value, then the fallback.
func pickString(command *cobra.Command, flagName string, flagValue string, configured string, fallback string) string {
	if command.Flags().Changed(flagName) {
		return flagValue
	}
	if configured != "" {
		return configured
	}
	return fallback
}

// pickBool mirrors pickString for tri-state configuration booleans.
func pickBool(command *cobra.Command, flagName string, flagValue bool, configured *bool, fallback bool) bool {
	if command.Flags().Changed(flagName) {
		return flagValue
	}
	if configured != nil {
		return *configured
	}
	return fallback
}

func validateChoice(kind string, value string, allowed ...string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if normalized == candidate {
			return normalized, nil
		}
	}
	return "", fmt.Errorf(invalidValueFormat, kind, value)
}

// createTOCCommand returns the toc subcommand.
func createTOCCommand(app *application) *cobra.Command {
	var outputFormat string
	var parserName string
	var summaryLabel string
	var copyEnabled bool

	tocCommand := &cobra.Command{
		Use:     tocUse,
		Aliases: []string{tocAlias},
		Short:   tocShortDescription,
		Long:    tocLongDescription,
		Example: tocUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			loaded, loadError := loadConfiguration(command)
			if loadError != nil {
				return loadError
			}
			settings := loaded.TOC

			documentPath := settings.File
			if len(arguments) == 1 {
				documentPath = arguments[0]
			}
			if documentPath == "" {
				documentPath = utils.DefaultReadmeFileName
			}
			format, formatError := validateChoice(formatFlagName, pickString(command, formatFlagName, outputFormat, settings.Format, types.FormatHTML), types.FormatHTML, types.FormatJSON)
			if formatError != nil {
				return formatError
			}
			parser, parserError := validateChoice(parserFlagName, pickString(command, parserFlagName, parserName, settings.Parser, types.ParserLines), types.ParserLines, types.ParserMarkdown)
			if parserError != nil {
				return parserError
			}

			return runTOC(app, command.OutOrStdout(), tocRequest{
				documentPath: documentPath,
				format:       format,
				parser:       parser,
				summary:      pickString(command, summaryFlagName, summaryLabel, settings.Summary, toc.DefaultSummary),
				copyEnabled:  pickBool(command, copyFlagName, copyEnabled, settings.Clipboard, false),
			})
		},
	}

	tocCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatHTML, formatFlagDescription)
	tocCommand.Flags().StringVar(&parserName, parserFlagName, types.ParserLines, parserFlagDescription)
	tocCommand.Flags().StringVar(&summaryLabel, summaryFlagName, toc.DefaultSummary, tocSummaryFlagDescription)
	registerBooleanFlag(tocCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return tocCommand
}

type tocRequest struct {
	documentPath string
	format       string
	parser       string
	summary      string
	copyEnabled  bool
}

func runTOC(app *application, stdout io.Writer, request tocRequest) error {
	var scanner toc.HeadingScanner = toc.LineScanner{}
	if request.parser == types.ParserMarkdown {
		scanner = toc.MarkdownScanner{}
	}
	builder := toc.Builder{Summary: request.summary}
	app.logger.Debug("reading headings",
		zap.String("path", request.documentPath),
		zap.String("parser", request.parser),
		zap.String("format", request.format))

	var rendered string
	switch request.format {
	case types.FormatHTML:
		generated, generateError := toc.Generate(request.documentPath, scanner, builder)
		if generateError != nil {
			return generateError
		}
		if _, writeError := fmt.Fprintln(stdout, generated); writeError != nil {
			return writeError
		}
		rendered = generated
	default:
		headings, readError := toc.ReadHeadings(request.documentPath, scanner)
		if readError != nil {
			return readError
		}
		written, writeError := output.WriteHeadings(stdout, request.format, headings, builder)
		if writeError != nil {
			return writeError
		}
		rendered = written
	}
	if request.copyEnabled {
		app.copyToClipboard(rendered)
	}
	return nil
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(app *application) *cobra.Command {
	var outputFormat string
	var exclusionPatterns []string
	var ignoreFilePath string
	var disableDefaultIgnore bool
	var summaryEnabled bool
	var copyEnabled bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			loaded, loadError := loadConfiguration(command)
			if loadError != nil {
				return loadError
			}
			settings := loaded.Tree

			format, formatError := validateChoice(formatFlagName, pickString(command, formatFlagName, outputFormat, settings.Format, types.FormatRaw), types.FormatRaw, types.FormatJSON)
			if formatError != nil {
				return formatError
			}

			fileEntries, ignoreFileError := config.LoadIgnoreFile(pickString(command, ignoreFileFlagName, ignoreFilePath, settings.IgnoreFile, ""))
			if ignoreFileError != nil {
				return ignoreFileError
			}
			ignored := config.ResolveIgnoredNames(config.IgnoreSources{
				UseDefaults: !pickBool(command, noDefaultIgnoreFlagName, disableDefaultIgnore, invertBool(settings.UseDefaultIgnore), false),
				Configured:  settings.Ignore,
				FileEntries: fileEntries,
				Flags:       exclusionPatterns,
			})

			return runTree(command.Context(), app, command.OutOrStdout(), treeRequest{
				paths:          arguments,
				ignored:        ignored,
				format:         format,
				summaryEnabled: pickBool(command, summaryFlagName, summaryEnabled, settings.Summary, false),
				copyEnabled:    pickBool(command, copyFlagName, copyEnabled, settings.Clipboard, false),
			})
		},
	}

	treeCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	treeCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().StringVar(&ignoreFilePath, ignoreFileFlagName, "", ignoreFileFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &disableDefaultIgnore, noDefaultIgnoreFlagName, false, noDefaultIgnoreFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &summaryEnabled, summaryFlagName, false, treeSummaryFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

func invertBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	inverted := !*value
	return &inverted
}

type treeRequest struct {
	paths          []string
	ignored        []string
	format         string
	summaryEnabled bool
	copyEnabled    bool
}

// runTree streams every validated root through one renderer.
func runTree(ctx context.Context, app *application, stdout io.Writer, request treeRequest) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	validatedPaths, pathValidationError := resolveAndValidatePaths(request.paths)
	if pathValidationError != nil {
		return pathValidationError
	}

	var captured bytes.Buffer
	writer := stdout
	if request.copyEnabled {
		writer = io.MultiWriter(stdout, &captured)
	}

	var renderer output.StreamRenderer
	switch request.format {
	case types.FormatJSON:
		renderer = output.NewJSONStreamRenderer(writer, len(validatedPaths), request.summaryEnabled)
	default:
		renderer = output.NewRawStreamRenderer(writer, request.summaryEnabled)
	}

	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
		if err == nil && request.copyEnabled {
			app.copyToClipboard(captured.String())
		}
	}()

	app.logger.Debug("ignoring directories", zap.Strings("names", request.ignored))
	for _, validatedPath := range validatedPaths {
		options := layout.Options{
			Root:    validatedPath.AbsolutePath,
			Ignored: request.ignored,
			Logger:  app.logger,
		}
		producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
			return stream.StreamTree(streamCtx, options, ch)
		}
		if streamErr := dispatchStream(ctx, producer, renderer.Handle); streamErr != nil {
			return fmt.Errorf(errorTreeFormat, validatedPath.AbsolutePath, streamErr)
		}
	}
	return nil
}

// dispatchStream runs produce and consume concurrently; events are consumed in the order produced.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}

// resolveAndValidatePaths converts input paths to absolute form and checks they are directories.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf(errorNotDirectoryFormat, inputPath)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath})
	}
	return result, nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			_, err := fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return err
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func (app *application) copyToClipboard(text string) {
	if app.copier == nil {
		return
	}
	if copyError := app.copier.Copy(text); copyError != nil {
		app.logger.Warn(warningClipboardMessage, zap.Error(copyError))
	}
}
